package pets

import "time"

// Zone es la zona de la ciudad donde se hacen los paseos: norte, centro o sur.
type Zone string

const (
	ZoneNorth  Zone = "norte"
	ZoneCenter Zone = "centro"
	ZoneSouth  Zone = "sur"
)

// Pet es la mascota registrada por un cliente.
type Pet struct {
	ID          string
	OwnerUserID int64

	Name  string
	Breed string
	Zone  Zone
	Age   int

	Description      string
	Comments         string
	MedicalCondition string

	// Foto opcional, guardada junto al registro.
	Photo            []byte
	PhotoContentType string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Pet) HasPhoto() bool { return len(p.Photo) > 0 }
