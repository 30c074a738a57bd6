package models

import "testing"

func TestLevelForPointsBoundaries(t *testing.T) {
	cases := []struct {
		points int
		want   Level
	}{
		{0, LevelBlanco},
		{500, LevelBlanco},
		{999, LevelBlanco},
		{1000, LevelSilver},
		{1500, LevelSilver},
		{1999, LevelSilver},
		{2000, LevelGold},
		{3999, LevelGold},
		{4000, LevelPlatinum},
		{10000, LevelPlatinum},
	}
	for _, tc := range cases {
		if got := LevelForPoints(tc.points); got != tc.want {
			t.Errorf("LevelForPoints(%d) = %s, want %s", tc.points, got, tc.want)
		}
	}
}

func TestLevelForPointsMonotonic(t *testing.T) {
	rank := map[Level]int{
		LevelBlanco:   0,
		LevelSilver:   1,
		LevelGold:     2,
		LevelPlatinum: 3,
	}

	prev := LevelForPoints(0)
	for points := 1; points <= 5000; points++ {
		cur := LevelForPoints(points)
		if rank[cur] < rank[prev] {
			t.Fatalf("level dropped from %s to %s at %d points", prev, cur, points)
		}
		prev = cur
	}
}
