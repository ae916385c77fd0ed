package terrain

// DefaultMap returns the built-in courtyard: a walled 12x16 plateau with a
// winding path, a small hill and a dip near one corner.
func DefaultMap() *Map {
	m, err := NewMap("courtyard", HeightGrid{
		{1, 1, 1, 1, 0, 1, 5, 5, 5, 5, 4, 5, 6, 7, 8, 9},
		{6, 5, 2, 2, 1, 2, 5, 5, 5, 5, 5, 5, 5, 6, 7, 8},
		{5, 5, 5, 2, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 6, 7},
		{5, 5, 5, 1, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 6},
		{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 4, 5, 5, 5, 5},
		{5, 5, 6, 5, 5, 5, 5, 5, 5, 5, 5, 4, 5, 5, 5, 5},
		{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 4, 5, 5, 5, 5},
		{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5},
		{5, 5, 5, 5, 6, 6, 6, 6, 5, 5, 5, 5, 5, 5, 5, 5},
		{5, 5, 5, 5, 5, 7, 7, 5, 5, 5, 5, 5, 5, 5, 5, 5},
		{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 4, 4, 5, 5},
		{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 4, 4, 5, 5},
	}, TypeGrid{
		"                ",
		" xxxxxxxxxxxxxx ",
		" xrrrrrr      x ",
		" x      r     x ",
		" x   x  r x   x ",
		" x      r     x ",
		" x      r     x ",
		" x      r    rx ",
		" x   x  r x r x ",
		" x       rrrr x ",
		" xxxxxxxxxxxxx  ",
		"                ",
	})
	if err != nil {
		panic("terrain: built-in map is invalid: " + err.Error())
	}
	return m
}
