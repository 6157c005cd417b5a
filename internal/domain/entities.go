package domain

// Entity names used in not-found messages.
const (
	EntityActivity     = "Activity"
	EntityBuilding     = "Building"
	EntityOrganization = "Organization"
	EntityPhoneNumber  = "PhoneNumber"
)
