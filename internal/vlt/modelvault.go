//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"slices"
	"sync"

	"github.com/e-gun/CorpusWorkshop/internal/lda"
	"github.com/e-gun/CorpusWorkshop/internal/vec"
	"github.com/e-gun/CorpusWorkshop/internal/vis"
)

//
// THREAD SAFE INFRASTRUCTURE: MUTEX
//

// FittedModel - everything the topic routes need; Model and DTM are nil for a record reloaded from the store
type FittedModel struct {
	ID       string
	Model    *lda.Model
	DTM      *vec.DTM
	Prepared *vis.Prepared
	Labels   []string
	Bags     []vec.BagWithLocus
}

// MakeModelVault - called only once; yields the AllModels vault
func MakeModelVault() ModelVault {
	return ModelVault{
		ModelMap: make(map[string]FittedModel),
		mutex:    sync.RWMutex{},
	}
}

// ModelVault - there should be only one of these; and it contains all the fitted models
type ModelVault struct {
	ModelMap map[string]FittedModel
	mutex    sync.RWMutex
}

func (mv *ModelVault) InsertModel(m FittedModel) {
	mv.mutex.Lock()
	defer mv.mutex.Unlock()
	mv.ModelMap[m.ID] = m
}

func (mv *ModelVault) Delete(id string) {
	mv.mutex.Lock()
	defer mv.mutex.Unlock()
	delete(mv.ModelMap, id)
}

func (mv *ModelVault) IsInVault(id string) bool {
	mv.mutex.RLock()
	defer mv.mutex.RUnlock()
	_, b := mv.ModelMap[id]
	return b
}

func (mv *ModelVault) GetModel(id string) (FittedModel, bool) {
	mv.mutex.RLock()
	defer mv.mutex.RUnlock()
	m, ok := mv.ModelMap[id]
	return m, ok
}

// IDs - sorted
func (mv *ModelVault) IDs() []string {
	mv.mutex.RLock()
	defer mv.mutex.RUnlock()
	ids := make([]string, 0, len(mv.ModelMap))
	for k := range mv.ModelMap {
		ids = append(ids, k)
	}
	slices.Sort(ids)
	return ids
}
