package calendar

import "time"

// stamp is a wall-clock instant in the tables' location, minute resolution.
type stamp struct {
	month, day, hour, minute int
}

// Tabulated term instants (KST). 1995 lacks 소한 and 대한; those fall back
// to the approximation.
var builtinExact = map[int]map[SolarTerm]stamp{
	1995: {
		Ipchun:       {2, 4, 9, 14},
		Usu:          {2, 19, 5, 1},
		Gyeongchip:   {3, 6, 0, 46},
		Chunbun:      {3, 21, 2, 14},
		Cheongmyeong: {4, 5, 15, 36},
		Gogu:         {4, 20, 22, 1},
		Ipha:         {5, 6, 2, 20},
		Soman:        {5, 21, 4, 35},
		Mangjong:     {6, 6, 5, 46},
		Haji:         {6, 21, 15, 34},
		Soseo:        {7, 7, 12, 3},
		Daeseo:       {7, 23, 6, 29},
		Ipchu:        {8, 8, 0, 1},
		Cheoseo:      {8, 23, 16, 35},
		Baengno:      {9, 8, 6, 0},
		Chubun:       {9, 23, 16, 13},
		Hallo:        {10, 8, 23, 37},
		Sanggang:     {10, 24, 3, 4},
		Ipdong:       {11, 8, 3, 4},
		Soseol:       {11, 22, 23, 57},
		Daeseol:      {12, 7, 17, 53},
		Dongji:       {12, 22, 8, 17},
	},
	2024: {
		Sohan:        {1, 6, 5, 49},
		Daehan:       {1, 20, 23, 7},
		Ipchun:       {2, 4, 17, 27},
		Usu:          {2, 19, 13, 13},
		Gyeongchip:   {3, 5, 11, 23},
		Chunbun:      {3, 20, 12, 6},
		Cheongmyeong: {4, 4, 16, 2},
		Gogu:         {4, 19, 23, 0},
		Ipha:         {5, 5, 9, 10},
		Soman:        {5, 20, 22, 0},
		Mangjong:     {6, 5, 13, 10},
		Haji:         {6, 21, 5, 51},
		Soseo:        {7, 6, 23, 20},
		Daeseo:       {7, 22, 16, 44},
		Ipchu:        {8, 7, 9, 9},
		Cheoseo:      {8, 22, 23, 55},
		Baengno:      {9, 7, 12, 11},
		Chubun:       {9, 22, 21, 44},
		Hallo:        {10, 8, 4, 0},
		Sanggang:     {10, 23, 7, 15},
		Ipdong:       {11, 7, 7, 20},
		Soseol:       {11, 22, 4, 56},
		Daeseol:      {12, 7, 0, 17},
		Dongji:       {12, 21, 18, 21},
	},
}

func builtinExactTimes(loc *time.Location) map[int]map[SolarTerm]time.Time {
	out := make(map[int]map[SolarTerm]time.Time, len(builtinExact))
	for year, terms := range builtinExact {
		m := make(map[SolarTerm]time.Time, len(terms))
		for term, s := range terms {
			m[term] = time.Date(year, time.Month(s.month), s.day, s.hour, s.minute, 0, 0, loc)
		}
		out[year] = m
	}
	return out
}
