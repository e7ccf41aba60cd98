package store

import (
	"encoding/json"
)

// CURRENT_VERSION is the version of encoded records.
const CURRENT_VERSION = 1

func EncodeRun(run Run) ([]byte, error) {
	run.Version = CURRENT_VERSION
	return json.Marshal(run)
}

func DecodeRun(data []byte) (run Run, err error) {
	err = json.Unmarshal(data, &run)
	if err == nil && run.Version != CURRENT_VERSION {
		err = ErrVersionMismatch
	}
	if err != nil {
		run = Run{}
	}
	return
}

func EncodeImprovement(imp Improvement) ([]byte, error) {
	imp.Version = CURRENT_VERSION
	return json.Marshal(imp)
}

func DecodeImprovement(data []byte) (imp Improvement, err error) {
	err = json.Unmarshal(data, &imp)
	if err == nil && imp.Version != CURRENT_VERSION {
		err = ErrVersionMismatch
	}
	if err != nil {
		imp = Improvement{}
	}
	return
}
