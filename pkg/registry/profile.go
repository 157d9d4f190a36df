package registry

import "fmt"

// Profile describes a Redis server a session can be opened against.
// It is the persisted shape of a connection: everything except the live
// session handle itself.
type Profile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`
}

// Validate reports whether the profile can be dialed.
func (p Profile) Validate() error {
	if p.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidProfile)
	}
	if p.Port < 1 || p.Port > 65535 {
		return fmt.Errorf("%w: port must be in range 1-65535, got %d", ErrInvalidProfile, p.Port)
	}
	if p.DB < 0 {
		return fmt.Errorf("%w: db index must not be negative", ErrInvalidProfile)
	}
	return nil
}

// Addr returns the host:port dial address.
func (p Profile) Addr() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}
