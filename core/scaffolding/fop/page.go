package fop

import (
	"fmt"
	"strconv"
)

// Page is an offset page request.
type Page struct {
	Limit int
	Skip  int
}

// ParsePage parses limit/skip strings, defaulting to 20 rows.
func ParsePage(pageLimit string, skip string) (Page, error) {
	limit := 20

	if pageLimit != "" {
		var err error
		limit, err = strconv.Atoi(pageLimit)
		if err != nil {
			return Page{}, fmt.Errorf("page limit conversion: %w", err)
		}
	}

	if limit <= 0 {
		return Page{}, fmt.Errorf("rows value too small, must be larger than 0")
	}

	if limit > 100 {
		return Page{}, fmt.Errorf("rows value too large, must be less than 100")
	}

	offset := 0
	if skip != "" {
		var err error
		offset, err = strconv.Atoi(skip)
		if err != nil {
			return Page{}, fmt.Errorf("skip conversion: %w", err)
		}
		if offset < 0 {
			return Page{}, fmt.Errorf("skip must not be negative")
		}
	}

	return Page{Limit: limit, Skip: offset}, nil
}
