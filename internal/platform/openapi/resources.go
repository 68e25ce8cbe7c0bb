package openapi

var timestamps = []Field{
	{Name: "created_at", Type: "string", Format: "date-time", Required: true},
	{Name: "updated_at", Type: "string", Format: "date-time", Required: true},
}

// DefaultResources describes the patient, dentist and appointment collections
// under /api/v1. Rows are snake_case; request bodies are camelCase.
func DefaultResources() []Resource {
	return []Resource{
		{
			Name: "Patient",
			Path: "/api/v1/patients",
			Fields: append([]Field{
				{Name: "id", Type: "string", Format: "uuid", Required: true},
				{Name: "name", Type: "string", Required: true},
				{Name: "email", Type: "string", Format: "email"},
				{Name: "phone", Type: "string"},
				{Name: "date_of_birth", Type: "string", Format: "date", Nullable: true},
				{Name: "address", Type: "string"},
				{Name: "insurance_provider", Type: "string"},
				{Name: "insurance_id", Type: "string"},
				{Name: "medical_history", Type: "string"},
				{Name: "allergies", Type: "string"},
				{Name: "status", Type: "string", Enum: []string{"active", "inactive"}, Required: true},
				{Name: "last_visit", Type: "string", Format: "date", Nullable: true},
			}, timestamps...),
			Input: []Field{
				{Name: "name", Type: "string", Required: true},
				{Name: "email", Type: "string", Format: "email"},
				{Name: "phone", Type: "string"},
				{Name: "dateOfBirth", Type: "string", Format: "date"},
				{Name: "address", Type: "string"},
				{Name: "insuranceProvider", Type: "string"},
				{Name: "insuranceId", Type: "string"},
				{Name: "medicalHistory", Type: "string"},
				{Name: "allergies", Type: "string"},
				{Name: "status", Type: "string", Enum: []string{"active", "inactive"}},
				{Name: "lastVisit", Type: "string", Format: "date"},
			},
			Filters: []Field{
				{Name: "status", Type: "string", Enum: []string{"active", "inactive"}},
				{Name: "search", Type: "string"},
			},
		},
		{
			Name: "Dentist",
			Path: "/api/v1/dentists",
			Fields: append([]Field{
				{Name: "id", Type: "string", Format: "uuid", Required: true},
				{Name: "name", Type: "string", Required: true},
				{Name: "specialization", Type: "string"},
				{Name: "status", Type: "string", Enum: []string{"active", "inactive"}, Required: true},
			}, timestamps...),
			Input: []Field{
				{Name: "name", Type: "string", Required: true},
				{Name: "specialization", Type: "string"},
				{Name: "status", Type: "string", Enum: []string{"active", "inactive"}},
			},
			Filters: []Field{
				{Name: "status", Type: "string", Enum: []string{"all"}},
			},
		},
		{
			Name: "Appointment",
			Path: "/api/v1/appointments",
			Fields: append([]Field{
				{Name: "id", Type: "string", Format: "uuid", Required: true},
				{Name: "patient_id", Type: "string", Format: "uuid", Nullable: true},
				{Name: "patient_name", Type: "string", Required: true},
				{Name: "date", Type: "string", Format: "date", Required: true},
				{Name: "time", Type: "string", Required: true},
				{Name: "duration", Type: "integer", Required: true},
				{Name: "type", Type: "string", Required: true},
				{Name: "dentist_id", Type: "string", Format: "uuid", Nullable: true},
				{Name: "dentist", Type: "string"},
				{Name: "status", Type: "string", Enum: appointmentStatuses, Required: true},
				{Name: "notes", Type: "string"},
			}, timestamps...),
			Input: []Field{
				{Name: "patientId", Type: "string", Format: "uuid"},
				{Name: "patientName", Type: "string", Required: true},
				{Name: "date", Type: "string", Format: "date", Required: true},
				{Name: "time", Type: "string", Required: true},
				{Name: "duration", Type: "integer"},
				{Name: "type", Type: "string"},
				{Name: "dentistId", Type: "string", Format: "uuid", Required: true},
				{Name: "dentist", Type: "string"},
				{Name: "status", Type: "string", Enum: appointmentStatuses},
				{Name: "notes", Type: "string"},
			},
			Filters: []Field{
				{Name: "date", Type: "string", Format: "date"},
				{Name: "from", Type: "string", Format: "date"},
				{Name: "to", Type: "string", Format: "date"},
				{Name: "dentistId", Type: "string", Format: "uuid"},
				{Name: "patientId", Type: "string", Format: "uuid"},
				{Name: "status", Type: "string", Enum: appointmentStatuses},
			},
			Conflicts: true,
		},
	}
}

var appointmentStatuses = []string{"scheduled", "confirmed", "in-progress", "completed", "cancelled", "no-show"}
