package models

import "time"

// ModelType identifies one of the four scoring domains.
type ModelType string

const (
	ModelTypePackaging ModelType = "packaging"
	ModelTypeCarbon    ModelType = "carbon"
	ModelTypeProduct   ModelType = "product"
	ModelTypeESG       ModelType = "esg"
)

// ModelTypes lists the known domains in seeding order.
var ModelTypes = []ModelType{ModelTypePackaging, ModelTypeCarbon, ModelTypeProduct, ModelTypeESG}

func ParseModelType(s string) (ModelType, bool) {
	for _, t := range ModelTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Training lifecycle states. A train call moves a row to training from any
// state; only the delayed completion moves it to trained.
const (
	StatusNotTrained = "not_trained"
	StatusTraining   = "training"
	StatusTrained    = "trained"
)

const DefaultModelVersion = "1.0"

type ModelStatus struct {
	ID          uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ModelType   ModelType  `gorm:"column:model_type;type:varchar(32);uniqueIndex;not null" json:"modelType"`
	Status      string     `gorm:"column:status;type:varchar(20);not null;default:not_trained" json:"status"`
	Accuracy    *float64   `gorm:"column:accuracy" json:"accuracy"`
	LastTrained *time.Time `gorm:"column:last_trained" json:"lastTrained"`
	Version     string     `gorm:"column:version;type:varchar(20);not null;default:'1.0'" json:"version"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

func (ModelStatus) TableName() string { return "model_status" }
