package store

import (
	"fmt"
	"log"
)

// seedPlay is one entry of the built-in playbook catalog.
type seedPlay struct {
	Name        string
	Description string
	PlayType    string
}

// playCatalog is the reference playbook seeded at startup. It is append-only
// configuration: existing rows are never updated or removed by seeding.
var playCatalog = []seedPlay{
	// Offense
	{"Horns Twist", "Pick and roll from horns position. Guard receives screen from top of key, rolls/pops for scoring opportunity.", "Offense"},
	{"Spain PNR", "Guard initiates pick and roll in Spain position (wing). Ballhandler attacks middle or wing.", "Offense"},
	{"Dribble Handoff", "Guard executes dribble handoff with wing player. Creates driving lane or passing option.", "Offense"},
	{"Pick and Pop", "Guard uses screener who pops to mid-range/three-point line after setting screen.", "Offense"},
	{"Pick and Roll", "Classic pick and roll with ballhandler. Screener rolls to basket or pops for shot.", "Offense"},
	{"High Post Entry", "Feed post player at high post. Creates passing opportunities to cutters or post scoring.", "Offense"},
	{"Wing Isolation", "Isolate wing player on one side with screening action. Creates one-on-one opportunity.", "Offense"},
	{"Weak Side Cut", "Offensive player cuts to basket on weak side while ball is on opposite side.", "Offense"},
	{"Ball Screen", "On-ball screen from guard or wing. Creates separation for shot or driving lane.", "Offense"},
	{"Flare Screen", "Screener sets screen to create space on perimeter for three-point shot.", "Offense"},
	{"Staggered Screen", "Two defenders screen consecutively for offensive player. Creates spacing and shooting opportunity.", "Offense"},
	{"Cross Screen", "Screener crosses lane to set screen on opposite side. Targets post player or wing.", "Offense"},
	{"UCLA Cut", "Post player screens for wing, wing cuts to basket. High-low action.", "Offense"},
	{"Zipper Cut", "Cutter uses screen to move along baseline or through lane. Creates backdoor opportunity.", "Offense"},
	{"Transition Break", "Fast break after defensive rebound or turnover. Early offense before defense is set.", "Offense"},
	// Defense
	{"2-3 Zone", "Standard 2-3 zone defense. Protects paint, concedes perimeter shots.", "Defense"},
	{"3-2 Zone", "Extended zone pressuring the perimeter. Vulnerable to baseline cuts.", "Defense"},
	{"Full Court Press", "Full court man pressure after made baskets. Forces turnovers and tempo.", "Defense"},
	{"Switch Everything", "All screens switched 1 through 5. Prevents open looks off screens.", "Defense"},
	{"Ice PNR", "Force pick and roll ballhandler to the sideline, deny the middle.", "Defense"},
	// Special
	{"BLOB Stack", "Baseline out-of-bounds stack set. Screens for lob or corner three.", "Special"},
	{"SLOB Quick", "Sideline out-of-bounds quick hitter for a catch-and-shoot look.", "Special"},
	{"ATO Hammer", "After-timeout hammer action: drive baseline, weak-side corner three.", "Special"},
}

// SeedData inserts the play catalog. Safe to run on every startup.
func (db *Database) SeedData() error {
	log.Println("Seeding play catalog...")

	inserted := 0
	for _, p := range playCatalog {
		res, err := db.conn.Exec(`
			INSERT INTO plays (name, description, play_type)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO NOTHING
		`, p.Name, p.Description, p.PlayType)
		if err != nil {
			return fmt.Errorf("failed to seed play %q: %w", p.Name, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	log.Printf("  ✓ Play catalog seeded (%d new, %d total)", inserted, len(playCatalog))
	return nil
}
