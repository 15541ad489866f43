package model

// ScannerRole is the physical location a fixed scanner is assigned to.
type ScannerRole string

// Scanner roles.
const (
	RoleCloset     ScannerRole = "closet"
	RoleLaundryBin ScannerRole = "laundry_bin"
	RoleWasher     ScannerRole = "washer"
	RoleDryer      ScannerRole = "dryer"
	RoleIroning    ScannerRole = "ironing"
)

// ScannerRoles lists every valid role.
var ScannerRoles = []ScannerRole{
	RoleCloset,
	RoleLaundryBin,
	RoleWasher,
	RoleDryer,
	RoleIroning,
}

// Valid reports whether r is one of the defined scanner roles.
func (r ScannerRole) Valid() bool {
	for _, v := range ScannerRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Scanner is a fixed-location NFC reader. The scanner ID is the key in
// the stored document, not a serialized field.
type Scanner struct {
	ID   string      `json:"-"`
	Role ScannerRole `json:"role"`
	Name string      `json:"name"`
}
