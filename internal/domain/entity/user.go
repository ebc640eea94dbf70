package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the single identity record for every actor, discriminated by Role.
// The medical columns are only meaningful for patients.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password       string    `gorm:"type:text;not null" json:"-"`
	Role           Role      `gorm:"type:varchar(20);not null;index"`
	FirstName      *string   `gorm:"type:varchar(100)"`
	LastName       *string   `gorm:"type:varchar(100)"`
	SecondLastName *string   `gorm:"type:varchar(100)"`
	IsActive       bool      `gorm:"not null;default:true;index"`

	DiabetesType       *DiabetesType `gorm:"type:varchar(20);index"`
	DiagnosisYear      *int
	HasHypertension    *bool
	BirthDate          *time.Time `gorm:"type:date"`
	Gender             *Gender    `gorm:"type:varchar(10)"`
	Height             *float64
	Weight             *float64
	MedicalHistory     *string `gorm:"type:text"`
	CurrentMedications *string `gorm:"type:text"`
	Allergies          *string `gorm:"type:text"`
	EmergencyContact   *string `gorm:"type:varchar(255)"`
	EmergencyPhone     *string `gorm:"type:varchar(50)"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	DoctorProfile *DoctorProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the id on the application side so every driver behaves the same.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SetMedicalProfile copies every medical field onto the record.
func (u *User) SetMedicalProfile(m MedicalProfile) {
	birthDate := m.BirthDate
	u.DiabetesType = &m.DiabetesType
	u.DiagnosisYear = &m.DiagnosisYear
	u.HasHypertension = &m.HasHypertension
	u.BirthDate = &birthDate
	u.Gender = &m.Gender
	u.Height = &m.Height
	u.Weight = &m.Weight
	u.MedicalHistory = m.MedicalHistory
	u.CurrentMedications = m.CurrentMedications
	u.Allergies = m.Allergies
	u.EmergencyContact = m.EmergencyContact
	u.EmergencyPhone = m.EmergencyPhone
}

// UserPatch lists the columns an update may replace. A nil field is left untouched.
// Password must already be hashed.
type UserPatch struct {
	Password       *string
	FirstName      *string
	LastName       *string
	SecondLastName *string
	IsActive       *bool

	DiabetesType       *DiabetesType
	DiagnosisYear      *int
	HasHypertension    *bool
	BirthDate          *time.Time
	Gender             *Gender
	Height             *float64
	Weight             *float64
	MedicalHistory     *string
	CurrentMedications *string
	Allergies          *string
	EmergencyContact   *string
	EmergencyPhone     *string
}

// MedicalPatch builds a patch that writes every medical field of m.
// Optional free-text fields that are nil keep their stored value.
func MedicalPatch(m MedicalProfile) UserPatch {
	birthDate := m.BirthDate
	return UserPatch{
		DiabetesType:       &m.DiabetesType,
		DiagnosisYear:      &m.DiagnosisYear,
		HasHypertension:    &m.HasHypertension,
		BirthDate:          &birthDate,
		Gender:             &m.Gender,
		Height:             &m.Height,
		Weight:             &m.Weight,
		MedicalHistory:     m.MedicalHistory,
		CurrentMedications: m.CurrentMedications,
		Allergies:          m.Allergies,
		EmergencyContact:   m.EmergencyContact,
		EmergencyPhone:     m.EmergencyPhone,
	}
}

// Columns returns the column/value pairs to write.
func (p UserPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Password != nil {
		cols["password"] = *p.Password
	}
	if p.FirstName != nil {
		cols["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		cols["last_name"] = *p.LastName
	}
	if p.SecondLastName != nil {
		cols["second_last_name"] = *p.SecondLastName
	}
	if p.IsActive != nil {
		cols["is_active"] = *p.IsActive
	}
	if p.DiabetesType != nil {
		cols["diabetes_type"] = string(*p.DiabetesType)
	}
	if p.DiagnosisYear != nil {
		cols["diagnosis_year"] = *p.DiagnosisYear
	}
	if p.HasHypertension != nil {
		cols["has_hypertension"] = *p.HasHypertension
	}
	if p.BirthDate != nil {
		cols["birth_date"] = *p.BirthDate
	}
	if p.Gender != nil {
		cols["gender"] = string(*p.Gender)
	}
	if p.Height != nil {
		cols["height"] = *p.Height
	}
	if p.Weight != nil {
		cols["weight"] = *p.Weight
	}
	if p.MedicalHistory != nil {
		cols["medical_history"] = *p.MedicalHistory
	}
	if p.CurrentMedications != nil {
		cols["current_medications"] = *p.CurrentMedications
	}
	if p.Allergies != nil {
		cols["allergies"] = *p.Allergies
	}
	if p.EmergencyContact != nil {
		cols["emergency_contact"] = *p.EmergencyContact
	}
	if p.EmergencyPhone != nil {
		cols["emergency_phone"] = *p.EmergencyPhone
	}
	return cols
}

// UserFilter narrows count and group-by queries.
type UserFilter struct {
	Role            Role
	IsActive        *bool
	HasHypertension *bool
}
