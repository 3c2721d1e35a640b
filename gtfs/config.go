package gtfs

import (
	"fmt"
	"io"
	"time"

	json "github.com/goccy/go-json"

	"github.com/hupe1980/transitgo/collection"
	"github.com/hupe1980/transitgo/model"
)

// defaultDatasetID names the dataset when no config is provided.
const defaultDatasetID = "default_dataset"

// datasetValidityDays is the half-width of the validity window assigned
// to a freshly ingested dataset.
const datasetValidityDays = 15

type configFile struct {
	Contributor model.Contributor `json:"contributor"`
	Dataset     struct {
		DatasetID string `json:"dataset_id"`
	} `json:"dataset"`
}

// ReadConfig decodes the JSON feed configuration into contributor and
// dataset collections. A nil reader yields default values. The dataset
// validity window is today plus/minus 15 days.
func ReadConfig(r io.Reader) (
	*collection.CollectionWithID[model.Contributor],
	*collection.CollectionWithID[model.Dataset],
	error,
) {
	contributor := model.DefaultContributor()
	datasetID := defaultDatasetID
	if r != nil {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, nil, fmt.Errorf("config: %w", err)
		}
		var cfg configFile
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, nil, fmt.Errorf("config: %w", err)
		}
		contributor = cfg.Contributor
		if cfg.Dataset.DatasetID != "" {
			datasetID = cfg.Dataset.DatasetID
		}
	}

	today := model.DateOf(time.Now())
	dataset := model.Dataset{
		ID:            datasetID,
		ContributorID: contributor.ID,
		StartDate:     today.AddDays(-datasetValidityDays),
		EndDate:       today.AddDays(datasetValidityDays),
	}

	contributors, err := collection.NewCollectionWithID([]model.Contributor{contributor})
	if err != nil {
		return nil, nil, err
	}
	datasets, err := collection.NewCollectionWithID([]model.Dataset{dataset})
	if err != nil {
		return nil, nil, err
	}
	return contributors, datasets, nil
}
