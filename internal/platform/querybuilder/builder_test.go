package querybuilder

import (
	"testing"

	"github.com/lib/pq"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("tournament_id", "player_id").
		From("tournament_standings").
		Where(Eq("tournament_id", "t1"), IsNull("team_name")).
		OrderBy("rank", "player_id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT tournament_id, player_id FROM tournament_standings WHERE tournament_id = $1 AND team_name IS NULL ORDER BY rank, player_id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "t1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_AnyAndExpr(t *testing.T) {
	query, args, err := Select("round_id", "player_id", "strokes").
		From("scores").
		Where(
			Any("round_id", pq.Array([]string{"r1", "r2"})),
			Any("player_id", pq.Array([]string{"p1"})),
			Expr("strokes = ?", 1),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT round_id, player_id, strokes FROM scores WHERE round_id = ANY($1) AND player_id = ANY($2) AND strokes = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	query, args, err := Select("id").From("rounds").Where(In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM rounds WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected empty IN rendering: %s %+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("tournament_team_standings").
		Columns("tournament_id", "team_name").
		Values("t1", "Eagles").
		Suffix("ON CONFLICT (tournament_id, team_name) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO tournament_team_standings (tournament_id, team_name) VALUES ($1, $2) ON CONFLICT (tournament_id, team_name) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "t1" || args[1] != "Eagles" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type insertFixture struct {
	TournamentID string  `db:"tournament_id"`
	Points       float64 `db:"total_points"`
	Ignored      string  `db:"-"`
	internal     string
}

func TestInsertModel(t *testing.T) {
	query, args, err := InsertModel("tournament_standings", insertFixture{TournamentID: "t1", Points: 12.5, internal: "x"}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO tournament_standings (tournament_id, total_points) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != 12.5 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModel("x", (*insertFixture)(nil), ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
}

func TestUpsertModel(t *testing.T) {
	query, _, err := UpsertModel("tournament_standings", insertFixture{TournamentID: "t1", Points: 3}, "tournament_id")
	if err != nil {
		t.Fatalf("build upsert model query: %v", err)
	}

	wantQuery := "INSERT INTO tournament_standings (tournament_id, total_points) VALUES ($1, $2) ON CONFLICT (tournament_id) DO UPDATE SET total_points = EXCLUDED.total_points"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}

	if _, _, err := UpsertModel("tournament_standings", insertFixture{}); err == nil {
		t.Fatalf("expected error without conflict columns")
	}
}
