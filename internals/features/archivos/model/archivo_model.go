package model

import (
	"time"

	"github.com/google/uuid"
)

// Referencia a un archivo subido, ligada a una entrega.
type ArchivoModel struct {
	ArchivoID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:archivo_id" json:"archivo_id"`

	ArchivoEntregaID uuid.UUID `gorm:"type:uuid;not null;index;column:archivo_entrega_id" json:"archivo_entrega_id"`

	ArchivoNombre      string `gorm:"type:varchar(255);not null;column:archivo_nombre" json:"archivo_nombre"`
	ArchivoRuta        string `gorm:"type:varchar(255);not null;column:archivo_ruta" json:"archivo_ruta"`
	ArchivoTipoMime    string `gorm:"type:varchar(120);column:archivo_tipo_mime" json:"archivo_tipo_mime"`
	ArchivoTamanoBytes int64  `gorm:"not null;default:0;column:archivo_tamano_bytes" json:"archivo_tamano_bytes"`

	ArchivoCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:archivo_created_at" json:"archivo_created_at"`
}

func (ArchivoModel) TableName() string { return "archivos" }
