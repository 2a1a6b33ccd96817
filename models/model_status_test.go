package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseModelType(t *testing.T) {
	for _, mt := range ModelTypes {
		got, ok := ParseModelType(string(mt))
		assert.True(t, ok)
		assert.Equal(t, mt, got)
	}

	for _, s := range []string{"", "Carbon", "weather", "esg "} {
		_, ok := ParseModelType(s)
		assert.False(t, ok, s)
	}
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "model_status", ModelStatus{}.TableName())
	assert.Equal(t, "model_predictions", ModelPrediction{}.TableName())
	assert.Equal(t, "batch_jobs", BatchJob{}.TableName())
}
