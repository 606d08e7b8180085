package star

import (
	"fmt"
	"strconv"
	"strings"
)

// calcStarIndex locates the star in the observational catalogue. An
// unknown star resolves to -1 and switches molecular data off, since no
// observed line profiles can be associated with it.
func calcStarIndex(s *Store) error {
	if s.ref == nil {
		s.setDerived("STAR_INDEX", -1)
		return nil
	}
	name, err := s.GetString("STAR_NAME")
	if err != nil {
		return err
	}
	index, err := s.ref.StarIndex(name)
	if err != nil {
		return err
	}
	if index < 0 {
		s.logger.Warn("star not in catalogue", "star", name)
		s.setDerived("DATA_MOL", 0)
	}
	s.setDerived("STAR_INDEX", index)
	return nil
}

// calcStarColumn reads one numeric catalogue column for this star.
func calcStarColumn(s *Store, keyword string) error {
	index, err := s.GetInt("STAR_INDEX")
	if err != nil {
		return err
	}
	if index < 0 {
		name, _ := s.GetString("STAR_NAME")
		return fmt.Errorf("%w: %s for uncatalogued star %s", ErrMissing, keyword, name)
	}
	cell, err := s.ref.StarValue(keyword, index)
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return fmt.Errorf("catalogue %s for star %d: %w", keyword, index, err)
	}
	s.setDerived(keyword, v)
	return nil
}

func calcStarNamePlots(s *Store) error {
	return calcStarName(s, "STAR_NAME_PLOTS")
}

func calcStarNameGastronoom(s *Store) error {
	return calcStarName(s, "STAR_NAME_GASTRONOOM")
}

// calcStarName reads an alternate star name column, falling back to the
// plain star name for uncatalogued stars.
func calcStarName(s *Store, keyword string) error {
	name, err := s.GetString("STAR_NAME")
	if err != nil {
		return err
	}
	index := -1
	if s.ref != nil {
		index, err = s.GetInt("STAR_INDEX")
		if err != nil {
			return err
		}
	}
	if index < 0 {
		s.setDerived(keyword, name)
		return nil
	}
	cell, err := s.ref.StarValue(keyword, index)
	if err != nil {
		return err
	}
	s.setDerived(keyword, strings.TrimSpace(cell))
	return nil
}
