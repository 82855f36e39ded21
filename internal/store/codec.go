package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/warehouse/pkg/identity"
	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// modelRow is the persisted form of a Model. The timestamp keeps the
// canonical microsecond layout so a decoded model reproduces the exact
// identity it was stored under.
type modelRow struct {
	PayloadLabel string         `json:"payload_label"`
	Payload      []byte         `json:"payload"`
	ProjectName  string         `json:"project_name"`
	Timestamp    string         `json:"timestamp"`
	Creator      string         `json:"creator"`
	Meta         map[string]any `json:"meta"`
}

// projectRow is the persisted form of a Project.
type projectRow struct {
	Name        string  `json:"project_name"`
	Description string  `json:"project_description"`
	Models      []int32 `json:"models"`
	Creator     string  `json:"creator"`
}

// encodeRecord serializes rec to its kind tag and JSON row.
func encodeRecord(rec types.Record) (string, []byte, error) {
	switch r := rec.(type) {
	case *types.Model:
		row := modelRow{
			PayloadLabel: r.Payload().Label,
			Payload:      r.Payload().Data,
			ProjectName:  r.ProjectName(),
			Timestamp:    r.Timestamp().Format(identity.TimeLayout),
			Creator:      r.Creator(),
			Meta:         r.Meta().Fields(),
		}
		data, err := json.Marshal(row)
		return types.KindModel, data, err
	case *types.Project:
		row := projectRow{
			Name:        r.Name(),
			Description: r.Description(),
			Models:      r.Models(),
			Creator:     r.Creator(),
		}
		data, err := json.Marshal(row)
		return types.KindProject, data, err
	}
	return "", nil, fmt.Errorf("encode: unsupported record kind %q", rec.Kind())
}

// decodeRecord rebuilds a record from its kind tag and JSON row.
func decodeRecord(kind string, data []byte) (types.Record, error) {
	switch kind {
	case types.KindModel:
		var row modelRow
		if err := json.Unmarshal(data, &row); err != nil {
			return nil, fmt.Errorf("decode model: %w", err)
		}
		ts, err := time.Parse(identity.TimeLayout, row.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("decode model timestamp: %w", err)
		}
		meta, err := types.NewModelMeta(row.Meta)
		if err != nil {
			return nil, fmt.Errorf("decode model meta: %w", err)
		}
		blob := identity.Blob{Label: row.PayloadLabel, Data: row.Payload}
		return types.RestoreModel(blob, row.ProjectName, ts, row.Creator, meta), nil
	case types.KindProject:
		var row projectRow
		if err := json.Unmarshal(data, &row); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		return types.RestoreProject(row.Name, row.Description, row.Models, row.Creator), nil
	}
	return nil, fmt.Errorf("decode: unsupported record kind %q", kind)
}
