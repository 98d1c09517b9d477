package model

// Speciality choices offered by the clinic. The add-doctor form only
// accepts one of these.
var Specialities = []string{
	"General physician",
	"Gynecologist",
	"Dermatologist",
	"Pediatricians",
	"Neurologist",
	"Gastroenterologist",
}

// Form defaults. The add-doctor screen resets to these after a
// successful submission.
const (
	DefaultExperience = "1 Year"
	DefaultSpeciality = "General physician"
)

type Address struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

// Doctor is a record from the admin doctor list. Only Available is
// mutable from the portal, via the availability toggle.
type Doctor struct {
	ID         string  `json:"_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email,omitempty"`
	Image      string  `json:"image"`
	Speciality string  `json:"speciality"`
	Degree     string  `json:"degree"`
	Experience string  `json:"experience"`
	About      string  `json:"about"`
	Fees       int     `json:"fees"`
	Address    Address `json:"address"`
	Available  bool    `json:"available"`
}

// DoctorForm holds the add-doctor screen state. It is the only piece of
// screen-local state in the portal; everything else renders straight
// from façade collections.
type DoctorForm struct {
	Name       string  `form:"name" json:"name" validate:"required"`
	Email      string  `form:"email" json:"email" validate:"required,email"`
	Password   string  `form:"password" json:"password" validate:"required,min=8"`
	Experience string  `form:"experience" json:"experience" validate:"required"`
	Fees       int     `form:"fees" json:"fees" validate:"required,gt=0"`
	About      string  `form:"about" json:"about" validate:"required"`
	Speciality string  `form:"speciality" json:"speciality" validate:"required,oneof='General physician' Gynecologist Dermatologist Pediatricians Neurologist Gastroenterologist"`
	Degree     string  `form:"degree" json:"degree" validate:"required"`
	Address    Address `json:"address"`

	// Image is the raw upload; required before any network call is made.
	Image     []byte `json:"-"`
	ImageName string `json:"-"`
}

// NewDoctorForm returns a form populated with the documented defaults.
func NewDoctorForm() DoctorForm {
	return DoctorForm{
		Experience: DefaultExperience,
		Speciality: DefaultSpeciality,
	}
}

// Reset returns the form to its defaults, clearing the image.
func (f *DoctorForm) Reset() {
	*f = NewDoctorForm()
}

// HasImage reports whether an image upload is attached.
func (f *DoctorForm) HasImage() bool {
	return len(f.Image) > 0
}
