package models

// Role identifies which audience group a user belongs to
type Role string

const (
	RolePetOwner      Role = "pet_owner"
	RoleBreeder       Role = "breeder"
	RoleVeterinarian  Role = "veterinarian"
	RoleVetStudent    Role = "vet_student"
	RoleVetTechnician Role = "vet_technician"
)

// VetGroupRoles are the veterinary-professional roles
func VetGroupRoles() []Role {
	return []Role{RoleVeterinarian, RoleVetStudent, RoleVetTechnician}
}

// OwnerGroupRoles are the pet-owner audience roles
func OwnerGroupRoles() []Role {
	return []Role{RolePetOwner, RoleBreeder}
}

// IsVetGroup reports whether the role belongs to the veterinary group
func (r Role) IsVetGroup() bool {
	return r == RoleVeterinarian || r == RoleVetStudent || r == RoleVetTechnician
}

// IsOwnerGroup reports whether the role belongs to the owner/breeder group
func (r Role) IsOwnerGroup() bool {
	return r == RolePetOwner || r == RoleBreeder
}

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	return r.IsVetGroup() || r.IsOwnerGroup()
}
