//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelVault(t *testing.T) {
	mv := MakeModelVault()
	assert.False(t, mv.IsInVault("a"))
	mv.InsertModel(FittedModel{ID: "b"})
	mv.InsertModel(FittedModel{ID: "a", Labels: []string{"x"}})
	assert.True(t, mv.IsInVault("a"))
	assert.Equal(t, []string{"a", "b"}, mv.IDs())

	m, ok := mv.GetModel("a")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, m.Labels)

	mv.Delete("a")
	_, ok = mv.GetModel("a")
	assert.False(t, ok)
}

func TestJobInfoHub(t *testing.T) {
	StartHubs()
	StartHubs()

	assert.False(t, FetchJobInfo("nosuchjob").Exists)

	ctx, cancel := context.WithCancel(context.Background())
	InsertJob(JobInfo{ID: "j1", Total: 4, Stage: "queued", Launched: time.Now(), CancelFnc: cancel})

	ji := FetchJobInfo("j1")
	require.True(t, ji.Exists)
	assert.Equal(t, "queued", ji.Stage)

	SetStage("j1", "vectorising", 2)
	ji = FetchJobInfo("j1")
	assert.Equal(t, "vectorising", ji.Stage)
	assert.Equal(t, 2, ji.Done)
	assert.False(t, ji.Finished)

	WSInfo.Cancel <- "j1"
	// the hub serves requests one at a time: once this answers, the cancel has been handled
	_ = FetchJobInfo("j1")
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	WSInfo.Finish <- JIKVs{Key: "j1", Val: "model-1"}
	ji = FetchJobInfo("j1")
	assert.True(t, ji.Finished)
	assert.Equal(t, "model-1", ji.ModelID)
	assert.Equal(t, 4, ji.Done)

	InsertJob(JobInfo{ID: "j2", Total: 4, Launched: time.Now()})
	WSInfo.Fail <- JIKVs{Key: "j2", Val: "boom"}
	ji = FetchJobInfo("j2")
	assert.True(t, ji.Finished)
	assert.Equal(t, "boom", ji.Err)

	WSInfo.Del <- "j2"
	assert.False(t, FetchJobInfo("j2").Exists)

	// a finished job cannot be cancelled
	ctx3, cancel3 := context.WithCancel(context.Background())
	defer cancel3()
	InsertJob(JobInfo{ID: "j3", Total: 2, Launched: time.Now(), CancelFnc: cancel3})
	WSInfo.Finish <- JIKVs{Key: "j3", Val: "model-3"}
	WSInfo.Cancel <- "j3"
	_ = FetchJobInfo("j3")
	assert.NoError(t, ctx3.Err())
	WSInfo.Del <- "j3"

	// updates to unknown jobs are dropped
	SetStage("nosuchjob", "x", 1)
	assert.False(t, FetchJobInfo("nosuchjob").Exists)
}

func TestFormatPoll(t *testing.T) {
	assert.Equal(t, "fitting: step 3 of 5 (2.1s)", formatpoll(PollData{Done: 3, Total: 5, Stage: "fitting", Elapsed: "2.1s"}))
	assert.Equal(t, "queued (0.0s)", formatpoll(PollData{Stage: "queued", Elapsed: "0.0s"}))
}
