package constant

const (
	RoleCustomer    = "customer"
	RoleClinicStaff = "clinic_staff"
)
