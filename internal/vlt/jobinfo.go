//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"context"
	"fmt"
	"sync"
	"time"
)

//
// CHANNEL-BASED JOBINFO REPORTING TO COMMUNICATE PROGRESS BETWEEN ROUTINES: fitting routes write; websocket reads
//

// JobInfo - what is known about a model fit in progress
type JobInfo struct {
	ID        string
	Exists    bool
	Stage     string
	Done      int
	Total     int
	Finished  bool
	Err       string
	ModelID   string
	Launched  time.Time
	CancelFnc context.CancelFunc
}

// JIKVi - JobInfoHub helper struct for setting an int Val on the item at map[Key]
type JIKVi struct {
	Key string
	Val int
}

// JIKVs - JobInfoHub helper struct for setting a string Val on the item at map[Key]
type JIKVs struct {
	Key string
	Val string
}

// JIReply - JobInfoHub helper struct for returning the JobInfo stored at map[Key]
type JIReply struct {
	Key      string
	Response chan JobInfo
}

// JobInfoHubInterface - the channels are unbuffered so that one writer's updates land in the order they were sent
type JobInfoHubInterface struct {
	UpdateDone  chan JIKVi
	UpdateStage chan JIKVs
	Finish      chan JIKVs
	Fail        chan JIKVs
	RequestInfo chan JIReply
	InsertInfo  chan JobInfo
	Cancel      chan string
	Del         chan string
}

// BuildJobInfoHubIf - build the JobInfoHubInterface that will interact with JobInfoHub (one and only one built at app startup)
func BuildJobInfoHubIf() *JobInfoHubInterface {
	return &JobInfoHubInterface{
		UpdateDone:  make(chan JIKVi),
		UpdateStage: make(chan JIKVs),
		Finish:      make(chan JIKVs),
		Fail:        make(chan JIKVs),
		RequestInfo: make(chan JIReply),
		InsertInfo:  make(chan JobInfo),
		Cancel:      make(chan string),
		Del:         make(chan string),
	}
}

var hubsonce sync.Once

// StartHubs - launch JobInfoHub() and the websocket pool; safe to call more than once
func StartHubs() {
	hubsonce.Do(func() {
		go JobInfoHub()
		go WebsocketPool.WSPoolStartListening()
	})
}

// JobInfoHub - the loop that lets you read/write from/to the various JobInfo channels via the JobInfo global
func JobInfoHub() {
	const (
		CANC    = "JobInfoHub() reports that '%s' was cancelled"
		FAIL    = "JobInfoHub() reports that '%s' failed: %s"
		FINWAIT = 600
		FINCHK  = 60
	)

	var (
		Allinfo = make(map[string]JobInfo)
		mtx     sync.Mutex
	)

	reporter := func(r JIReply) {
		if _, ok := Allinfo[r.Key]; ok {
			r.Response <- Allinfo[r.Key]
		} else {
			// "false" triggers a break in WSMessageLoop()
			r.Response <- JobInfo{Exists: false}
		}
	}

	update := func(id string, f func(j *JobInfo)) {
		if j, ok := Allinfo[id]; ok {
			f(&j)
			Allinfo[id] = j
		}
	}

	// finished jobs linger so that a late websocket still learns the outcome
	cleanfinished := func() {
		for {
			time.Sleep(time.Second * FINCHK)
			mtx.Lock()
			for id := range Allinfo {
				j := Allinfo[id]
				if j.Finished && time.Since(j.Launched) > time.Second*FINWAIT {
					delete(Allinfo, id)
				}
			}
			mtx.Unlock()
		}
	}

	go cleanfinished()

	// the main loop; it will never exit
	for {
		select {
		case rq := <-WSInfo.RequestInfo:
			mtx.Lock()
			reporter(rq)
		case ji := <-WSInfo.InsertInfo:
			mtx.Lock()
			ji.Exists = true
			Allinfo[ji.ID] = ji
		case wr := <-WSInfo.UpdateDone:
			mtx.Lock()
			update(wr.Key, func(j *JobInfo) { j.Done = wr.Val })
		case wr := <-WSInfo.UpdateStage:
			mtx.Lock()
			update(wr.Key, func(j *JobInfo) { j.Stage = wr.Val })
		case wr := <-WSInfo.Finish:
			mtx.Lock()
			update(wr.Key, func(j *JobInfo) {
				j.Finished = true
				j.Done = j.Total
				j.ModelID = wr.Val
				j.Stage = "done"
			})
		case wr := <-WSInfo.Fail:
			mtx.Lock()
			Msg.NOTE(fmt.Sprintf(FAIL, wr.Key, wr.Val))
			update(wr.Key, func(j *JobInfo) {
				j.Finished = true
				j.Err = wr.Val
				j.Stage = "failed"
			})
		case c := <-WSInfo.Cancel:
			mtx.Lock()
			if j, ok := Allinfo[c]; ok && !j.Finished && j.CancelFnc != nil {
				j.CancelFnc()
				Msg.PEEK(fmt.Sprintf(CANC, c))
			}
		case del := <-WSInfo.Del:
			mtx.Lock()
			delete(Allinfo, del)
		}
		mtx.Unlock()
	}
}

// FetchJobInfo - a copy of what the hub knows about id; Exists is false if it knows nothing
func FetchJobInfo(id string) JobInfo {
	responder := JIReply{Key: id, Response: make(chan JobInfo)}
	WSInfo.RequestInfo <- responder
	return <-responder.Response
}

// InsertJob - register a job before its goroutine starts writing to the hub
func InsertJob(ji JobInfo) {
	WSInfo.InsertInfo <- ji
}

func SetStage(id string, stage string, done int) {
	WSInfo.UpdateStage <- JIKVs{Key: id, Val: stage}
	WSInfo.UpdateDone <- JIKVi{Key: id, Val: done}
}
