package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Reporte de servicio social del alumno. Los campos del formulario se
// guardan como JSONB; el formato lo define el frontend.
type ReporteModel struct {
	ReporteID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:reporte_id" json:"reporte_id"`

	ReporteAlumnoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:reporte_alumno_id" json:"reporte_alumno_id"`

	ReporteDatos datatypes.JSONMap `gorm:"type:jsonb;column:reporte_datos" json:"reporte_datos"`

	ReporteCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:reporte_created_at" json:"reporte_created_at"`
	ReporteUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:reporte_updated_at" json:"reporte_updated_at"`
}

func (ReporteModel) TableName() string { return "reportes" }
