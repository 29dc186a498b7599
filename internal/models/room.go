package models

import "gorm.io/gorm"

// RoomKind is the closed set of room types. RoomKindOther unlocks the
// free-text KindOther field on Room, so the pair behaves as a tagged
// union rather than two independently nullable columns.
type RoomKind string

const (
	RoomKindBedroom    RoomKind = "bedroom"
	RoomKindBathroom   RoomKind = "bathroom"
	RoomKindKitchen    RoomKind = "kitchen"
	RoomKindLivingRoom RoomKind = "living room"
	RoomKindDiningRoom RoomKind = "dining room"
	RoomKindOffice     RoomKind = "office"
	RoomKindDen        RoomKind = "den"
	RoomKindGarage     RoomKind = "garage"
	RoomKindBasement   RoomKind = "basement"
	RoomKindAttic      RoomKind = "attic"
	RoomKindLaundry    RoomKind = "laundry room"
	RoomKindOther      RoomKind = "other"
)

// KnownRoomKinds lists every recognized room kind, in display order.
var KnownRoomKinds = []RoomKind{
	RoomKindBedroom,
	RoomKindBathroom,
	RoomKindKitchen,
	RoomKindLivingRoom,
	RoomKindDiningRoom,
	RoomKindOffice,
	RoomKindDen,
	RoomKindGarage,
	RoomKindBasement,
	RoomKindAttic,
	RoomKindLaundry,
	RoomKindOther,
}

// Valid reports whether k is a recognized room kind.
func (k RoomKind) Valid() bool {
	for _, known := range KnownRoomKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Room is a single room in a house. Kind "other" carries its display name
// in KindOther; for every other kind KindOther is empty.
type Room struct {
	gorm.Model
	HouseID   uint     `gorm:"index;not null" json:"house_id"`
	Kind      RoomKind `gorm:"not null" json:"kind"`
	KindOther string   `json:"kind_other,omitempty"`
}

// Label returns the display name for the room's kind.
func (r *Room) Label() string {
	if r.Kind == RoomKindOther && r.KindOther != "" {
		return r.KindOther
	}
	return titleCase(string(r.Kind))
}

// titleCase uppercases the first letter of each space-separated word.
// Room kinds are plain ASCII so a byte-level transform is enough.
func titleCase(s string) string {
	b := []byte(s)
	upNext := true
	for i := 0; i < len(b); i++ {
		if b[i] == ' ' {
			upNext = true
			continue
		}
		if upNext && b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
		upNext = false
	}
	return string(b)
}
