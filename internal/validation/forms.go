package validation

import "strings"

// Mensajes que se muestran junto al campo.
const (
	MsgRequired      = "Este campo es obligatorio"
	MsgEmail         = "Ingresa un correo válido"
	MsgPhone         = "El teléfono debe tener 10 dígitos"
	MsgPassword      = "La contraseña debe tener al menos 8 caracteres, una mayúscula, una minúscula y un número"
	MsgPasswordMatch = "Las contraseñas no coinciden"
	MsgPetName       = "El nombre es obligatorio y admite hasta 25 caracteres"
	MsgAge           = "La edad debe ser un número entre 0 y 20"
	MsgComments      = "Los comentarios admiten hasta 250 caracteres"
	MsgZone          = "Selecciona una zona: norte, centro o sur"
	MsgCode          = "Ingresa el código que recibiste por correo"
)

func Login(email, password string) FieldErrors {
	fe := FieldErrors{}
	checkEmail(fe, "email", email)
	if !Required(password) {
		fe.add("password", MsgRequired)
	}
	return fe
}

type RegisterForm struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

func Register(f RegisterForm) FieldErrors {
	fe := FieldErrors{}
	if !Required(f.Name) {
		fe.add("name", MsgRequired)
	}
	checkEmail(fe, "email", f.Email)
	if !Required(f.Phone) {
		fe.add("phone", MsgRequired)
	} else if !IsPhone(f.Phone) {
		fe.add("phone", MsgPhone)
	}
	checkNewPassword(fe, f.Password, f.ConfirmPassword)
	return fe
}

func ForgotPassword(email string) FieldErrors {
	fe := FieldErrors{}
	checkEmail(fe, "email", email)
	return fe
}

func ResetPassword(email, code, password, confirm string) FieldErrors {
	fe := FieldErrors{}
	checkEmail(fe, "email", email)
	if !Required(code) {
		fe.add("code", MsgCode)
	}
	checkNewPassword(fe, password, confirm)
	return fe
}

// ---------- pasos del wizard de mascota ----------

func BreedStep(breed string) FieldErrors {
	fe := FieldErrors{}
	if !Required(breed) {
		fe.add("breed", MsgRequired)
	}
	return fe
}

func ZoneStep(zone string) FieldErrors {
	fe := FieldErrors{}
	if _, ok := Zone(zone); !ok {
		fe.add("zone", MsgZone)
	}
	return fe
}

func ProfileStep(name, age string) FieldErrors {
	fe := FieldErrors{}
	if _, ok := PetName(name); !ok {
		fe.add("name", MsgPetName)
	}
	if _, ok := ParseAge(age); !ok {
		fe.add("age", MsgAge)
	}
	return fe
}

// DetailsStep: descripción y condición médica son libres; solo se limita comments.
func DetailsStep(description, comments, medicalCondition string) FieldErrors {
	fe := FieldErrors{}
	if !Comments(comments) {
		fe.add("comments", MsgComments)
	}
	return fe
}

func checkEmail(fe FieldErrors, field, email string) {
	if !Required(email) {
		fe.add(field, MsgRequired)
		return
	}
	if !IsEmail(email) {
		fe.add(field, MsgEmail)
	}
}

func checkNewPassword(fe FieldErrors, password, confirm string) {
	if !Required(password) {
		fe.add("password", MsgRequired)
	} else if !IsStrongPassword(password) {
		fe.add("password", MsgPassword)
	}
	if strings.TrimSpace(confirm) == "" {
		fe.add("confirm_password", MsgRequired)
	} else if password != confirm {
		fe.add("confirm_password", MsgPasswordMatch)
	}
}
