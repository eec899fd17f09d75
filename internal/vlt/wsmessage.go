//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/e-gun/CorpusWorkshop/internal/lnch"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/gorilla/websocket"
)

var Msg = lnch.NewMessageMakerWithDefaults()

//
// WEBSOCKET INFRASTRUCTURE: see https://tutorialedge.net/projects/chat-system-in-go-and-react/part-4-handling-multiple-clients/
//

type PollData struct {
	Done    int
	Total   int
	Stage   string
	Elapsed string
}

type WSClient struct {
	ID   string
	Conn *websocket.Conn
	Pool *WSPool
}

type WSPool struct {
	Add       chan *WSClient
	Remove    chan *WSClient
	ClientMap map[*WSClient]bool
	JSO       chan *WSJSOut
}

// WSJSOut - Close is "open" until the last message, which is "closed"
type WSJSOut struct {
	V     string `json:"value"`
	ID    string `json:"ID"`
	Close string `json:"close"`
	Model string `json:"model,omitempty"`
	Err   string `json:"error,omitempty"`
}

// WSMessageLoop - output the constantly updated fitting progress to the websocket; then exit
func (c *WSClient) WSMessageLoop() {
	const (
		FAIL    = `WSClient.WSMessageLoop() never found '%s' in the JobInfoHub`
		SUCCESS = `WSClient.WSMessageLoop() found '%s' in the JobInfoHub`
	)

	// wait for the job to exist
	quit := time.Now().Add(time.Second * 1)

	for {
		if FetchJobInfo(c.ID).Exists {
			Msg.FYI(fmt.Sprintf(SUCCESS, c.ID))
			break
		}
		if time.Now().After(quit) {
			Msg.FYI(fmt.Sprintf(FAIL, c.ID))
			c.Pool.JSO <- &WSJSOut{V: "no such job", ID: c.ID, Close: "closed", Err: "no such job"}
			c.Pool.Remove <- c
			return
		}
		time.Sleep(vv.WSPOLLINGPAUSE / 5)
	}

	// loop until the job finishes
	for {
		ji := FetchJobInfo(c.ID)
		if !ji.Exists {
			break
		}

		pd := PollData{
			Done:    ji.Done,
			Total:   ji.Total,
			Stage:   ji.Stage,
			Elapsed: fmt.Sprintf("%.1fs", time.Since(ji.Launched).Seconds()),
		}

		jso := &WSJSOut{
			V:     formatpoll(pd),
			ID:    c.ID,
			Close: "open",
		}

		if ji.Finished {
			jso.Close = "closed"
			jso.Model = ji.ModelID
			jso.Err = ji.Err
			c.Pool.JSO <- jso
			break
		}

		c.Pool.JSO <- jso
		time.Sleep(vv.WSPOLLINGPAUSE)
	}
	c.Pool.Remove <- c
}

// WSPoolStartListening - the WSPool will listen for activity on its various channels (only called once at app start)
func (pool *WSPool) WSPoolStartListening() {
	const (
		MSG1 = "Starting polling loop for %s"
		MSG2 = "WSPool client failed on WriteMessage()"
	)

	writemsg := func(jso *WSJSOut) {
		for cl := range pool.ClientMap {
			if cl.ID == jso.ID {
				js, y := json.Marshal(jso)
				Msg.EC(y)
				e := cl.Conn.WriteMessage(websocket.TextMessage, js)
				if e != nil {
					Msg.WARN(MSG2)
					delete(pool.ClientMap, cl)
				}
			}
		}
	}

	for {
		select {
		case cl := <-pool.Add:
			pool.ClientMap[cl] = true
			Msg.PEEK(fmt.Sprintf(MSG1, cl.ID))
		case cl := <-pool.Remove:
			delete(pool.ClientMap, cl)
		case wrt := <-pool.JSO:
			writemsg(wrt)
		}
	}
}

// WSFillNewPool - build a new WSPool (one and only one built at app startup)
func WSFillNewPool() *WSPool {
	return &WSPool{
		Add:       make(chan *WSClient),
		Remove:    make(chan *WSClient),
		ClientMap: make(map[*WSClient]bool),
		JSO:       make(chan *WSJSOut),
	}
}

// formatpoll - e.g. "fitting 5 topics: step 3 of 5 (2.1s)"
func formatpoll(pd PollData) string {
	const (
		STEP = `%s: step %d of %d (%s)`
		BARE = `%s (%s)`
	)
	if pd.Total == 0 {
		return fmt.Sprintf(BARE, pd.Stage, pd.Elapsed)
	}
	return fmt.Sprintf(STEP, pd.Stage, pd.Done, pd.Total, pd.Elapsed)
}
