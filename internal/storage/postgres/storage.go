package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/ricardozepinto10/NextGenAcademy/internal/model"
	"github.com/ricardozepinto10/NextGenAcademy/internal/storage"
)

const uniqueViolation = "23505"

// Storage is the relational store backed by PostgreSQL
type Storage struct {
	db *sql.DB
}

var _ storage.Storage = (*Storage)(nil)

// Open connects to dsn, pings the server and prepares the schema
func Open(ctx context.Context, dsn string) (*Storage, *sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	s, err := New(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return s, db, nil
}

// New wraps an open database handle. The caller owns db.
func New(ctx context.Context, db *sql.DB) (*Storage, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	s := &Storage{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS auth_users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	club_id BIGINT NOT NULL DEFAULT 0,
	role TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY REFERENCES auth_users(id) ON DELETE CASCADE,
	role TEXT NOT NULL DEFAULT 'guest',
	club_id BIGINT NOT NULL DEFAULT 0,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS clubs (
	id BIGSERIAL PRIMARY KEY,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS invitations (
	invite_code TEXT PRIMARY KEY,
	email TEXT NOT NULL,
	club_id BIGINT NOT NULL,
	role TEXT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	consumed_at TIMESTAMPTZ
)`,
	`CREATE TABLE IF NOT EXISTS teams (
	id BIGSERIAL PRIMARY KEY,
	club_id BIGINT NOT NULL,
	name TEXT NOT NULL,
	age_group TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS players (
	id BIGSERIAL PRIMARY KEY,
	club_id BIGINT NOT NULL,
	team_id BIGINT REFERENCES teams(id) ON DELETE SET NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL DEFAULT '',
	position TEXT NOT NULL DEFAULT '',
	birth_date DATE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
}

func (s *Storage) ensureSchema(ctx context.Context) error {
	for _, q := range schema {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// Identity operations

func (s *Storage) CreateIdentity(ctx context.Context, identity *model.Identity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin identity tx: %w", model.ErrPersistence, err)
	}
	defer func() { _ = tx.Rollback() }()

	email := strings.ToLower(identity.Email)
	const insertIdentity = `
INSERT INTO auth_users (id, email, password_hash, first_name, last_name, club_id, role, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	md := identity.Metadata
	if _, err := tx.ExecContext(ctx, insertIdentity,
		string(identity.ID), email, identity.PasswordHash,
		md.FirstName, md.LastName, int64(md.ClubID), string(md.Role), identity.CreatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return model.ErrEmailExists
		}
		return fmt.Errorf("%w: insert identity: %w", model.ErrPersistence, err)
	}

	const insertProfile = `INSERT INTO profiles (id, role, updated_at) VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, insertProfile, string(identity.ID), string(model.RoleGuest), identity.CreatedAt); err != nil {
		return fmt.Errorf("%w: insert profile: %w", model.ErrPersistence, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit identity: %w", model.ErrPersistence, err)
	}
	return nil
}

const identityColumns = `id, email, password_hash, first_name, last_name, club_id, role, created_at`

func scanIdentity(row *sql.Row) (*model.Identity, error) {
	var (
		identity model.Identity
		id       string
		clubID   int64
		role     string
	)
	err := row.Scan(&id, &identity.Email, &identity.PasswordHash,
		&identity.Metadata.FirstName, &identity.Metadata.LastName, &clubID, &role, &identity.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("%w: query identity: %w", model.ErrPersistence, err)
	}
	identity.ID = model.UserID(id)
	identity.Metadata.ClubID = model.ClubID(clubID)
	identity.Metadata.Role = model.Role(role)
	return &identity, nil
}

func (s *Storage) GetIdentity(ctx context.Context, id model.UserID) (*model.Identity, error) {
	q := `SELECT ` + identityColumns + ` FROM auth_users WHERE id = $1`
	return scanIdentity(s.db.QueryRowContext(ctx, q, string(id)))
}

func (s *Storage) GetIdentityByEmail(ctx context.Context, email string) (*model.Identity, error) {
	q := `SELECT ` + identityColumns + ` FROM auth_users WHERE email = $1`
	return scanIdentity(s.db.QueryRowContext(ctx, q, strings.ToLower(strings.TrimSpace(email))))
}

// Profile operations

func (s *Storage) GetProfile(ctx context.Context, id model.UserID) (*model.Profile, error) {
	const q = `SELECT id, role, club_id, first_name, last_name, updated_at FROM profiles WHERE id = $1`
	p, err := scanProfile(s.db.QueryRowContext(ctx, q, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query profile: %w", model.ErrPersistence, err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*model.Profile, error) {
	var (
		p      model.Profile
		id     string
		role   string
		clubID int64
	)
	if err := row.Scan(&id, &role, &clubID, &p.FirstName, &p.LastName, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.ID = model.UserID(id)
	p.Role = model.Role(role)
	p.ClubID = model.ClubID(clubID)
	return &p, nil
}

func (s *Storage) UpdateProfile(ctx context.Context, profile *model.Profile) error {
	const q = `
UPDATE profiles
SET role = $2, club_id = $3, first_name = $4, last_name = $5, updated_at = $6
WHERE id = $1`
	res, err := s.db.ExecContext(ctx, q, string(profile.ID), string(profile.Role),
		int64(profile.ClubID), profile.FirstName, profile.LastName, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: update profile: %w", model.ErrPersistence, err)
	}
	return requireRow(res, model.ErrProfileNotFound)
}

func (s *Storage) ListProfilesForClub(ctx context.Context, clubID model.ClubID, role model.Role) ([]*model.Profile, error) {
	q := `SELECT id, role, club_id, first_name, last_name, updated_at FROM profiles WHERE club_id = $1`
	args := []any{int64(clubID)}
	if role != "" {
		q += ` AND role = $2`
		args = append(args, string(role))
	}
	q += ` ORDER BY last_name, id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list profiles: %w", model.ErrPersistence, err)
	}
	defer rows.Close()

	var profiles []*model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan profile: %w", model.ErrPersistence, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Club operations

func (s *Storage) CreateClub(ctx context.Context, club *model.Club) error {
	const q = `INSERT INTO clubs (code, name, created_at) VALUES ($1, $2, $3) RETURNING id`
	var id int64
	if err := s.db.QueryRowContext(ctx, q, club.Code, club.Name, club.CreatedAt).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return model.ErrClubCodeExists
		}
		return fmt.Errorf("%w: insert club: %w", model.ErrPersistence, err)
	}
	club.ID = model.ClubID(id)
	return nil
}

func scanClub(row rowScanner) (*model.Club, error) {
	var (
		c  model.Club
		id int64
	)
	if err := row.Scan(&id, &c.Code, &c.Name, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.ID = model.ClubID(id)
	return &c, nil
}

func (s *Storage) GetClub(ctx context.Context, id model.ClubID) (*model.Club, error) {
	const q = `SELECT id, code, name, created_at FROM clubs WHERE id = $1`
	return s.getClub(ctx, q, int64(id))
}

func (s *Storage) GetClubByCode(ctx context.Context, code string) (*model.Club, error) {
	const q = `SELECT id, code, name, created_at FROM clubs WHERE code = $1`
	return s.getClub(ctx, q, code)
}

func (s *Storage) getClub(ctx context.Context, q string, arg any) (*model.Club, error) {
	c, err := scanClub(s.db.QueryRowContext(ctx, q, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrClubNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query club: %w", model.ErrPersistence, err)
	}
	return c, nil
}

func (s *Storage) ListClubs(ctx context.Context) ([]*model.Club, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, code, name, created_at FROM clubs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list clubs: %w", model.ErrPersistence, err)
	}
	defer rows.Close()

	clubs := []*model.Club{}
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan club: %w", model.ErrPersistence, err)
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

// Invitation operations

func (s *Storage) SaveInvitation(ctx context.Context, inv *model.Invitation) error {
	const q = `
INSERT INTO invitations (invite_code, email, club_id, role, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.db.ExecContext(ctx, q, inv.InviteCode, inv.Email, int64(inv.ClubID),
		string(inv.Role), inv.ExpiresAt, inv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrInviteCodeExists
		}
		return fmt.Errorf("%w: insert invitation: %w", model.ErrPersistence, err)
	}
	return nil
}

const invitationColumns = `invite_code, email, club_id, role, expires_at, created_at, consumed_at`

func scanInvitation(row rowScanner) (*model.Invitation, error) {
	var (
		inv      model.Invitation
		clubID   int64
		role     string
		consumed sql.NullTime
	)
	if err := row.Scan(&inv.InviteCode, &inv.Email, &clubID, &role, &inv.ExpiresAt, &inv.CreatedAt, &consumed); err != nil {
		return nil, err
	}
	inv.ClubID = model.ClubID(clubID)
	inv.Role = model.Role(role)
	if consumed.Valid {
		at := consumed.Time
		inv.ConsumedAt = &at
	}
	return &inv, nil
}

func (s *Storage) GetInvitationByCode(ctx context.Context, code string) (*model.Invitation, error) {
	q := `SELECT ` + invitationColumns + ` FROM invitations WHERE invite_code = $1`
	inv, err := scanInvitation(s.db.QueryRowContext(ctx, q, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrInvitationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query invitation: %w", model.ErrPersistence, err)
	}
	return inv, nil
}

func (s *Storage) ListInvitationsForClub(ctx context.Context, clubID model.ClubID) ([]*model.Invitation, error) {
	q := `SELECT ` + invitationColumns + ` FROM invitations WHERE club_id = $1 ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, q, int64(clubID))
	if err != nil {
		return nil, fmt.Errorf("%w: list invitations: %w", model.ErrPersistence, err)
	}
	defer rows.Close()

	var invitations []*model.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan invitation: %w", model.ErrPersistence, err)
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

func (s *Storage) ConsumeInvitation(ctx context.Context, code string, at time.Time) error {
	const q = `UPDATE invitations SET consumed_at = $2 WHERE invite_code = $1 AND consumed_at IS NULL`
	res, err := s.db.ExecContext(ctx, q, code, at)
	if err != nil {
		return fmt.Errorf("%w: consume invitation: %w", model.ErrPersistence, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: consume invitation: %w", model.ErrPersistence, err)
	}
	if n > 0 {
		return nil
	}

	// Nothing updated: either the code is unknown or it was already redeemed
	var exists bool
	const check = `SELECT EXISTS (SELECT 1 FROM invitations WHERE invite_code = $1)`
	if err := s.db.QueryRowContext(ctx, check, code).Scan(&exists); err != nil {
		return fmt.Errorf("%w: check invitation: %w", model.ErrPersistence, err)
	}
	if !exists {
		return model.ErrInvitationNotFound
	}
	return model.ErrInvitationConsumed
}

// Team operations

func (s *Storage) CreateTeam(ctx context.Context, team *model.Team) error {
	const q = `INSERT INTO teams (club_id, name, age_group, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int64
	if err := s.db.QueryRowContext(ctx, q, int64(team.ClubID), team.Name, team.AgeGroup, team.CreatedAt).Scan(&id); err != nil {
		return fmt.Errorf("%w: insert team: %w", model.ErrPersistence, err)
	}
	team.ID = model.TeamID(id)
	return nil
}

func scanTeam(row rowScanner) (*model.Team, error) {
	var (
		t      model.Team
		id     int64
		clubID int64
	)
	if err := row.Scan(&id, &clubID, &t.Name, &t.AgeGroup, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.ID = model.TeamID(id)
	t.ClubID = model.ClubID(clubID)
	return &t, nil
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	const q = `SELECT id, club_id, name, age_group, created_at FROM teams WHERE id = $1`
	t, err := scanTeam(s.db.QueryRowContext(ctx, q, int64(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query team: %w", model.ErrPersistence, err)
	}
	return t, nil
}

func (s *Storage) ListTeamsForClub(ctx context.Context, clubID model.ClubID) ([]*model.Team, error) {
	const q = `SELECT id, club_id, name, age_group, created_at FROM teams WHERE club_id = $1 ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, int64(clubID))
	if err != nil {
		return nil, fmt.Errorf("%w: list teams: %w", model.ErrPersistence, err)
	}
	defer rows.Close()

	var teams []*model.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan team: %w", model.ErrPersistence, err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// DeleteTeam removes the team; its players are unassigned by the team_id foreign key.
func (s *Storage) DeleteTeam(ctx context.Context, id model.TeamID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("%w: delete team: %w", model.ErrPersistence, err)
	}
	return requireRow(res, model.ErrTeamNotFound)
}

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	const q = `
INSERT INTO players (club_id, team_id, first_name, last_name, position, birth_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var teamID sql.NullInt64
	if player.TeamID != nil {
		teamID = sql.NullInt64{Int64: int64(*player.TeamID), Valid: true}
	}
	var birthDate sql.NullTime
	if player.BirthDate != nil {
		birthDate = sql.NullTime{Time: *player.BirthDate, Valid: true}
	}

	var id int64
	err := s.db.QueryRowContext(ctx, q, int64(player.ClubID), teamID, player.FirstName,
		player.LastName, player.Position, birthDate, player.CreatedAt).Scan(&id)
	if err != nil {
		return fmt.Errorf("%w: insert player: %w", model.ErrPersistence, err)
	}
	player.ID = model.PlayerID(id)
	return nil
}

const playerColumns = `id, club_id, team_id, first_name, last_name, position, birth_date, created_at`

func scanPlayer(row rowScanner) (*model.Player, error) {
	var (
		p         model.Player
		id        int64
		clubID    int64
		teamID    sql.NullInt64
		birthDate sql.NullTime
	)
	if err := row.Scan(&id, &clubID, &teamID, &p.FirstName, &p.LastName, &p.Position, &birthDate, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.ID = model.PlayerID(id)
	p.ClubID = model.ClubID(clubID)
	if teamID.Valid {
		t := model.TeamID(teamID.Int64)
		p.TeamID = &t
	}
	if birthDate.Valid {
		d := birthDate.Time
		p.BirthDate = &d
	}
	return &p, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	q := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	p, err := scanPlayer(s.db.QueryRowContext(ctx, q, int64(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query player: %w", model.ErrPersistence, err)
	}
	return p, nil
}

func (s *Storage) ListPlayersForClub(ctx context.Context, clubID model.ClubID) ([]*model.Player, error) {
	q := `SELECT ` + playerColumns + ` FROM players WHERE club_id = $1 ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, int64(clubID))
	if err != nil {
		return nil, fmt.Errorf("%w: list players: %w", model.ErrPersistence, err)
	}
	defer rows.Close()

	var players []*model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan player: %w", model.ErrPersistence, err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("%w: delete player: %w", model.ErrPersistence, err)
	}
	return requireRow(res, model.ErrPlayerNotFound)
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %w", model.ErrPersistence, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
