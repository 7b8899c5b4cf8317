package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/cricket-fantasy/internal/domain/contest"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/match"
	"github.com/riskibarqy/cricket-fantasy/internal/domain/player"
)

const (
	MatchIDUpcoming  = "ipl-2026-m01"
	MatchIDLive      = "ipl-2026-m02"
	MatchIDCompleted = "ipl-2026-m03"
)

var (
	sideMumbai    = match.Side{Name: "Mumbai Mavericks", Short: "MUM", Color: "#004BA0"}
	sideChennai   = match.Side{Name: "Chennai Chargers", Short: "CHE", Color: "#F9CD05"}
	sideBengaluru = match.Side{Name: "Bengaluru Blasters", Short: "BLR", Color: "#D41F2C"}
	sideKolkata   = match.Side{Name: "Kolkata Knights", Short: "KOL", Color: "#3A225D"}
)

// SeedMatches places the upcoming match inside the visibility window relative to now.
func SeedMatches(now time.Time) []match.Match {
	now = now.UTC().Truncate(time.Minute)
	return []match.Match{
		{
			ID:          MatchIDUpcoming,
			Home:        sideMumbai,
			Away:        sideChennai,
			Venue:       "Wankhede Stadium, Mumbai",
			StartTime:   now.Add(30 * time.Hour),
			Status:      match.StatusUpcoming,
			StatusNote:  "Toss at 19:00",
			PrizePool:   "10 Lakhs",
			EntryFee:    49,
			SpotsTotal:  10000,
			SpotsFilled: 6240,
			Format:      contest.DefaultFormatKey,
		},
		{
			ID:          MatchIDLive,
			Home:        sideBengaluru,
			Away:        sideKolkata,
			Venue:       "M. Chinnaswamy Stadium, Bengaluru",
			StartTime:   now.Add(-90 * time.Minute),
			Status:      match.StatusLive,
			StatusNote:  "BLR 142/3 (15.2)",
			PrizePool:   "5 Lakhs",
			EntryFee:    29,
			SpotsTotal:  5000,
			SpotsFilled: 5000,
			Format:      contest.DefaultFormatKey,
		},
		{
			ID:          MatchIDCompleted,
			Home:        sideChennai,
			Away:        sideKolkata,
			Venue:       "MA Chidambaram Stadium, Chennai",
			StartTime:   now.Add(-26 * time.Hour),
			Status:      match.StatusCompleted,
			StatusNote:  "CHE won by 18 runs",
			PrizePool:   "2 Lakhs",
			EntryFee:    19,
			SpotsTotal:  2000,
			SpotsFilled: 1870,
			Format:      contest.DefaultFormatKey,
		},
	}
}

type seedPick struct {
	name    string
	side    match.Side
	credits string
	form    []int64
}

var seedRoster = map[player.Role][]seedPick{
	player.RoleWicketKeeper: {
		{"Arjun Mehta", sideMumbai, "9.0", []int64{42, 18, 55}},
		{"Kiran Rao", sideChennai, "8.5", []int64{31, 12, 40}},
		{"Dev Malhotra", sideMumbai, "8.0", []int64{8, 22, 17}},
		{"Sameer Khan", sideChennai, "7.5", []int64{15, 3, 28}},
		{"Rohan Iyer", sideMumbai, "7.0", []int64{4, 11, 9}},
		{"Nikhil Bose", sideChennai, "9.5", []int64{61, 47, 38}},
		{"Aditya Nair", sideMumbai, "10.0", []int64{72, 58, 66}},
		{"Varun Pillai", sideChennai, "8.0", []int64{19, 25, 14}},
		{"Ishaan Das", sideMumbai, "7.0", []int64{6, 0, 12}},
	},
	player.RoleBatter: {
		{"Rahul Verma", sideMumbai, "9.5", []int64{64, 39, 71}},
		{"Manish Gupta", sideChennai, "9.0", []int64{45, 52, 33}},
		{"Yash Kulkarni", sideMumbai, "9.0", []int64{38, 41, 29}},
		{"Tarun Joshi", sideChennai, "8.5", []int64{27, 35, 22}},
		{"Prithvi Sen", sideMumbai, "10.5", []int64{88, 74, 91}},
		{"Akash Reddy", sideChennai, "8.0", []int64{21, 16, 30}},
		{"Harsh Patel", sideMumbai, "7.5", []int64{12, 19, 8}},
		{"Om Prakash", sideChennai, "7.0", []int64{5, 14, 10}},
		{"Vikram Singh", sideMumbai, "10.0", []int64{80, 62, 77}},
	},
	player.RoleAllRounder: {
		{"Karan Shah", sideChennai, "9.0", []int64{55, 48, 60}},
		{"Abhay Menon", sideMumbai, "9.0", []int64{46, 52, 39}},
		{"Ritesh Yadav", sideChennai, "8.5", []int64{33, 41, 27}},
		{"Gaurav Chawla", sideMumbai, "8.0", []int64{24, 30, 18}},
		{"Siddharth Roy", sideChennai, "10.0", []int64{79, 85, 70}},
		{"Pranav Bhat", sideMumbai, "7.5", []int64{14, 22, 9}},
		{"Mohit Saini", sideChennai, "7.0", []int64{10, 7, 16}},
		{"Lakshay Arora", sideMumbai, "9.5", []int64{66, 58, 72}},
		{"Neeraj Tiwari", sideChennai, "8.0", []int64{20, 26, 31}},
	},
	player.RoleBowler: {
		{"Jasdeep Gill", sideMumbai, "9.0", []int64{50, 34, 62}},
		{"Ravi Shankar", sideChennai, "9.0", []int64{44, 38, 51}},
		{"Umesh Pandey", sideMumbai, "9.5", []int64{58, 63, 49}},
		{"Deepak Hooda", sideChennai, "9.0", []int64{37, 45, 40}},
		{"Sandeep Kaur", sideMumbai, "8.5", []int64{29, 33, 25}},
		{"Avesh Mishra", sideChennai, "8.0", []int64{18, 27, 22}},
		{"Kuldeep Rana", sideMumbai, "7.5", []int64{11, 16, 20}},
		{"Tushar Dey", sideChennai, "7.0", []int64{6, 13, 9}},
		{"Bhuvan Kumar", sideMumbai, "10.5", []int64{83, 76, 90}},
	},
}

// SeedPlayers builds a 36-player roster, nine per role, for every seeded match.
func SeedPlayers(matches []match.Match) []player.Player {
	var out []player.Player
	for _, m := range matches {
		out = append(out, seedRosterFor(m)...)
	}
	return out
}

func seedRosterFor(m match.Match) []player.Player {
	prefixes := map[player.Role]string{
		player.RoleWicketKeeper: "wk",
		player.RoleBatter:       "bat",
		player.RoleAllRounder:   "ar",
		player.RoleBowler:       "bowl",
	}

	out := make([]player.Player, 0, 36)
	for _, role := range player.Roles {
		for i, pick := range seedRoster[role] {
			credits, err := player.ParseCredits(pick.credits)
			if err != nil {
				panic(err)
			}
			side := pick.side
			if side == sideMumbai {
				side = m.Home
			} else {
				side = m.Away
			}
			out = append(out, player.Player{
				ID:             fmt.Sprintf("%s-%s%d", m.ID, prefixes[role], i+1),
				MatchID:        m.ID,
				Name:           pick.name,
				TeamName:       side.Name,
				TeamShort:      side.Short,
				Role:           role,
				Credits:        credits,
				RecentForm:     append([]int64(nil), pick.form...),
				IsImpactPlayer: i == 8,
				IsInStartingXI: i < 7,
			})
		}
	}
	return out
}
