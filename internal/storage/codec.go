package storage

import (
	"encoding/json"
	"errors"

	"github.com/Mklevns/aletheia-phenom/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(r model.RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var run model.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return run, nil
}

func EncodeDiscovery(d model.DiscoveryRecord) ([]byte, error) {
	return json.Marshal(d)
}

func DecodeDiscovery(data []byte) (model.DiscoveryRecord, error) {
	var discovery model.DiscoveryRecord
	if err := json.Unmarshal(data, &discovery); err != nil {
		return model.DiscoveryRecord{}, err
	}
	if err := checkVersion(discovery.VersionedRecord); err != nil {
		return model.DiscoveryRecord{}, err
	}
	return discovery, nil
}

func EncodeTickStats(stats []model.TickStats) ([]byte, error) {
	return json.Marshal(stats)
}

func DecodeTickStats(data []byte) ([]model.TickStats, error) {
	var stats []model.TickStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
