// Package conversation implements the guided campaign setup: the stage
// machine, the accumulated session state, platform selection, and asset
// intake. It has no transport or storage dependencies; the session
// service owns locking and drives it from chat events.
package conversation

import "strings"

// Stage is one step of the guided conversation.
type Stage string

const (
	StageIntro     Stage = "intro"
	StageProduct   Stage = "product"
	StageAssets    Stage = "assets"
	StagePlatforms Stage = "platforms"
	StageSchedule  Stage = "schedule"
	StageReady     Stage = "ready"
)

// stageOrder is the only legal progression. Stages never go backward.
var stageOrder = []Stage{StageIntro, StageProduct, StageAssets, StagePlatforms, StageSchedule, StageReady}

// Next returns the stage that follows s. ok is false for StageReady
// and for unknown stages.
func (s Stage) Next() (Stage, bool) {
	for i, cur := range stageOrder {
		if cur == s && i+1 < len(stageOrder) {
			return stageOrder[i+1], true
		}
	}
	return s, false
}

// Product is what the campaign promotes.
type Product struct {
	Name string `json:"name"`
	Vibe string `json:"vibe"`
}

// Asset is one uploaded visual, held as a data URI.
type Asset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Data string `json:"data"`
}

// State accumulates everything the wizard collects for one session.
type State struct {
	Stage      Stage    `json:"stage"`
	Product    Product  `json:"product"`
	Assets     []Asset  `json:"assets"`
	Platforms  []string `json:"platforms"`
	CampaignID string   `json:"campaign_id,omitempty"`
}

// NewState returns a fresh session at the intro stage.
func NewState() *State {
	return &State{Stage: StageIntro}
}

// HasPlatform reports whether id is currently selected.
func (st *State) HasPlatform(id string) bool {
	for _, p := range st.Platforms {
		if p == id {
			return true
		}
	}
	return false
}

func (st *State) addPlatform(id string) {
	if !st.HasPlatform(id) {
		st.Platforms = append(st.Platforms, id)
	}
}

func (st *State) removePlatform(id string) {
	for i, p := range st.Platforms {
		if p == id {
			st.Platforms = append(st.Platforms[:i], st.Platforms[i+1:]...)
			return
		}
	}
}

// AddAsset appends an uploaded asset. Blank ids are rejected.
func (st *State) AddAsset(a Asset) bool {
	if strings.TrimSpace(a.ID) == "" {
		return false
	}
	st.Assets = append(st.Assets, a)
	return true
}

// RemoveAsset drops the asset with the given id, if present.
func (st *State) RemoveAsset(id string) bool {
	for i, a := range st.Assets {
		if a.ID == id {
			st.Assets = append(st.Assets[:i], st.Assets[i+1:]...)
			return true
		}
	}
	return false
}
