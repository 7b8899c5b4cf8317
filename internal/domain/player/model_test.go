package player

import "testing"

func TestParseRole(t *testing.T) {
	tests := map[string]Role{
		"WK":            RoleWicketKeeper,
		"wicket-keeper": RoleWicketKeeper,
		"Batter":        RoleBatter,
		"batsman":       RoleBatter,
		"all_rounder":   RoleAllRounder,
		"AR":            RoleAllRounder,
		"bowler":        RoleBowler,
	}
	for raw, want := range tests {
		got, ok := ParseRole(raw)
		if !ok || got != want {
			t.Fatalf("ParseRole(%q)=%q,%t want %q", raw, got, ok, want)
		}
	}

	if _, ok := ParseRole("coach"); ok {
		t.Fatalf("expected unknown role to be rejected")
	}
}

func TestPlayer_Validate(t *testing.T) {
	valid := Player{ID: "p1", MatchID: "m1", Name: "V Kohli", Role: RoleBatter, Credits: 1050}

	tests := []struct {
		name    string
		mutate  func(*Player)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Player) {}},
		{name: "missing id", mutate: func(p *Player) { p.ID = " " }, wantErr: true},
		{name: "missing match", mutate: func(p *Player) { p.MatchID = "" }, wantErr: true},
		{name: "missing name", mutate: func(p *Player) { p.Name = "" }, wantErr: true},
		{name: "long role spelling is not canonical", mutate: func(p *Player) { p.Role = "batter" }, wantErr: true},
		{name: "zero credits", mutate: func(p *Player) { p.Credits = 0 }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			err := p.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestPlayer_CloneDoesNotShareForm(t *testing.T) {
	original := Player{ID: "p1", RecentForm: []int64{10, 20}}
	cloned := original.Clone()
	cloned.RecentForm[0] = 99

	if original.RecentForm[0] != 10 {
		t.Fatalf("clone mutated original form")
	}
}
