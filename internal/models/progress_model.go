package models

import "time"

// DailyProgress holds one user's tracked metrics for one UTC calendar day.
// Metric fields are nil until the user reports them.
type DailyProgress struct {
	ID               string   `json:"id" gorm:"primaryKey" firestore:"-"` // "<user_id>_<date>"
	UserID           string   `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_date" firestore:"user_id"`
	Date             string   `json:"date" gorm:"not null;uniqueIndex:idx_progress_user_date" firestore:"date"` // YYYY-MM-DD
	Weight           *float64 `json:"weight" firestore:"weight"`
	CaloriesConsumed *float64 `json:"calories_consumed" firestore:"calories_consumed"`
	CaloriesTarget   *float64 `json:"calories_target" firestore:"calories_target"`
	Steps            *int     `json:"steps" firestore:"steps"`
	StepsTarget      *int     `json:"steps_target" firestore:"steps_target"`
	WaterIntake      *float64 `json:"water_intake" firestore:"water_intake"`
	WaterTarget      *float64 `json:"water_target" firestore:"water_target"`
	CompletedTasks   []string `json:"completed_tasks" gorm:"type:text;serializer:json" firestore:"completed_tasks"`
	ChestMeasurement *float64 `json:"chest_measurement" firestore:"chest_measurement"`
	WaistMeasurement *float64 `json:"waist_measurement" firestore:"waist_measurement"`
	HipsMeasurement  *float64 `json:"hips_measurement" firestore:"hips_measurement"`

	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updated_at"`
}

// TableName keeps the table name used by earlier deployments.
func (DailyProgress) TableName() string { return "daily_progress" }

// ProgressPatch carries the fields of a progress update. Nil means "leave
// unchanged"; a non-nil CompletedTasks replaces the whole list.
type ProgressPatch struct {
	Weight           *float64 `json:"weight,omitempty"`
	CaloriesConsumed *float64 `json:"calories_consumed,omitempty"`
	CaloriesTarget   *float64 `json:"calories_target,omitempty"`
	Steps            *int     `json:"steps,omitempty"`
	StepsTarget      *int     `json:"steps_target,omitempty"`
	WaterIntake      *float64 `json:"water_intake,omitempty"`
	WaterTarget      *float64 `json:"water_target,omitempty"`
	CompletedTasks   []string `json:"completed_tasks,omitempty"`
	ChestMeasurement *float64 `json:"chest_measurement,omitempty"`
	WaistMeasurement *float64 `json:"waist_measurement,omitempty"`
	HipsMeasurement  *float64 `json:"hips_measurement,omitempty"`
}

// IsEmpty reports whether the patch sets no field at all.
func (p ProgressPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields returns the set fields keyed by their column name.
func (p ProgressPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	setFloat := func(name string, v *float64) {
		if v != nil {
			fields[name] = *v
		}
	}
	setInt := func(name string, v *int) {
		if v != nil {
			fields[name] = *v
		}
	}

	setFloat("weight", p.Weight)
	setFloat("calories_consumed", p.CaloriesConsumed)
	setFloat("calories_target", p.CaloriesTarget)
	setInt("steps", p.Steps)
	setInt("steps_target", p.StepsTarget)
	setFloat("water_intake", p.WaterIntake)
	setFloat("water_target", p.WaterTarget)
	setFloat("chest_measurement", p.ChestMeasurement)
	setFloat("waist_measurement", p.WaistMeasurement)
	setFloat("hips_measurement", p.HipsMeasurement)
	if p.CompletedTasks != nil {
		fields["completed_tasks"] = p.CompletedTasks
	}
	return fields
}

// ApplyTo copies the set fields onto rec.
func (p ProgressPatch) ApplyTo(rec *DailyProgress) {
	if p.Weight != nil {
		rec.Weight = p.Weight
	}
	if p.CaloriesConsumed != nil {
		rec.CaloriesConsumed = p.CaloriesConsumed
	}
	if p.CaloriesTarget != nil {
		rec.CaloriesTarget = p.CaloriesTarget
	}
	if p.Steps != nil {
		rec.Steps = p.Steps
	}
	if p.StepsTarget != nil {
		rec.StepsTarget = p.StepsTarget
	}
	if p.WaterIntake != nil {
		rec.WaterIntake = p.WaterIntake
	}
	if p.WaterTarget != nil {
		rec.WaterTarget = p.WaterTarget
	}
	if p.CompletedTasks != nil {
		rec.CompletedTasks = p.CompletedTasks
	}
	if p.ChestMeasurement != nil {
		rec.ChestMeasurement = p.ChestMeasurement
	}
	if p.WaistMeasurement != nil {
		rec.WaistMeasurement = p.WaistMeasurement
	}
	if p.HipsMeasurement != nil {
		rec.HipsMeasurement = p.HipsMeasurement
	}
}
