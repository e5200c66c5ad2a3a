package models

// All returns every model registered for auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&OTP{},
		&LoginTracking{},
		&Category{},
		&Course{},
		&Lecture{},
		&PaymentOrder{},
		&Enrollment{},
		&Review{},
	}
}
