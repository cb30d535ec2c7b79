package settings

import (
	"water-delivery-core/models"
	"water-delivery-core/storage"
)

// BottleTypes returns a copy of the catalog.
func (s *Store) BottleTypes() []models.BottleType {
	out := make([]models.BottleType, len(s.bottleTypes))
	copy(out, s.bottleTypes)
	return out
}

// AddBottleType appends a catalog entry. Requires the seller capability.
func (s *Store) AddBottleType(name string, price float64) (models.BottleType, error) {
	var added models.BottleType
	err := s.mutate(CapabilitySeller, func() error {
		added = models.BottleType{ID: s.nextBottleID(), Name: name, Price: price}
		s.bottleTypes = append(s.bottleTypes, added)
		s.persist(storage.KeyCatalog, s.bottleTypes)
		return nil
	})
	return added, err
}

// nextBottleID is max(current ids)+1, not a persistent counter. Deleting the
// highest entry frees its id for the next insert; the client this replaces
// behaved the same way.
func (s *Store) nextBottleID() int {
	next := 1
	for _, t := range s.bottleTypes {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}

// BottleTypeUpdate merges into an existing entry; nil leaves a field as-is.
type BottleTypeUpdate struct {
	Name  *string
	Price *float64 `validate:"omitempty,gt=0"`
}

func (s *Store) UpdateBottleType(id int, upd BottleTypeUpdate) error {
	return s.mutate(CapabilitySeller, func() error {
		for i := range s.bottleTypes {
			if s.bottleTypes[i].ID != id {
				continue
			}
			if upd.Name != nil {
				s.bottleTypes[i].Name = *upd.Name
			}
			if upd.Price != nil {
				s.bottleTypes[i].Price = *upd.Price
			}
			s.persist(storage.KeyCatalog, s.bottleTypes)
			return nil
		}
		return ErrNotFound
	})
}

func (s *Store) DeleteBottleType(id int) error {
	return s.mutate(CapabilitySeller, func() error {
		for i := range s.bottleTypes {
			if s.bottleTypes[i].ID == id {
				s.bottleTypes = append(s.bottleTypes[:i], s.bottleTypes[i+1:]...)
				s.persist(storage.KeyCatalog, s.bottleTypes)
				return nil
			}
		}
		return ErrNotFound
	})
}

func defaultBottleTypes() []models.BottleType {
	return []models.BottleType{
		{ID: 1, Name: "18.9L Dispenser Bottle", Price: 50},
		{ID: 2, Name: "10L Bottle", Price: 30},
		{ID: 3, Name: "5L Bottle", Price: 15},
		{ID: 4, Name: "1.5L Bottle", Price: 5},
	}
}
