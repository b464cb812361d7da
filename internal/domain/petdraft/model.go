package petdraft

// Zone es la zona de la ciudad donde vive la mascota: norte, centro o sur.
type Zone string

const (
	ZoneNorth  Zone = "norte"
	ZoneCenter Zone = "centro"
	ZoneSouth  Zone = "sur"
)

func Zones() []Zone { return []Zone{ZoneNorth, ZoneCenter, ZoneSouth} }

// Photo es una referencia a un archivo local (todavía no subido).
type Photo struct {
	Path        string `json:"path"`
	FileName    string `json:"file_name,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// Draft es el perfil de mascota en construcción. nil = no cargado todavía.
type Draft struct {
	Breed            *string `json:"breed"`
	Zone             *Zone   `json:"zone"`
	Name             *string `json:"name"`
	Age              *int    `json:"age"`
	Description      *string `json:"description"`
	Comments         *string `json:"comments"`
	MedicalCondition *string `json:"medical_condition"`
	Photo            *Photo  `json:"photo"`
}

// IsEmpty indica si ningún campo fue cargado.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// clone copia los punteros para que el caller no pueda mutar el draft guardado.
func (d Draft) clone() Draft {
	return Draft{
		Breed:            clonePtr(d.Breed),
		Zone:             clonePtr(d.Zone),
		Name:             clonePtr(d.Name),
		Age:              clonePtr(d.Age),
		Description:      clonePtr(d.Description),
		Comments:         clonePtr(d.Comments),
		MedicalCondition: clonePtr(d.MedicalCondition),
		Photo:            clonePtr(d.Photo),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
