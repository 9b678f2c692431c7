package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/access"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/user"
)

// defaultOrdering matches the inmem repositories: newest rows first.
var defaultOrdering = core.DBOrdering{Field: "created_at"}

var allUsersQuery = `SELECT * FROM "user" ORDER BY ` + defaultOrdering.String()

type dbUser struct {
	ID           string     `db:"id"`
	Name         string     `db:"name"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	IsActive     bool       `db:"is_active"`
	Role         string     `db:"role"`
	SiteID       string     `db:"site_id"`
	SmallGroupID string     `db:"small_group_id"`
	PasswordHash null.Bytes `db:"password_hash"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	LastLogin    null.Time  `db:"last_login"`
}

func (du dbUser) toCore() user.User {
	usr := user.User{
		ID:           du.ID,
		Name:         du.Name,
		Username:     du.Username,
		Email:        du.Email,
		IsActive:     &du.IsActive,
		Role:         access.Role(du.Role),
		SiteID:       du.SiteID,
		SmallGroupID: du.SmallGroupID,
		PasswordHash: du.PasswordHash.Bytes,
		CreatedAt:    du.CreatedAt,
		UpdatedAt:    du.UpdatedAt,
	}
	if du.LastLogin.Valid {
		usr.LastLogin = du.LastLogin.Time
	}
	return usr
}

func fromCore(usr user.User) dbUser {
	du := dbUser{
		ID:           usr.ID,
		Name:         usr.Name,
		Username:     usr.Username,
		Email:        usr.Email,
		IsActive:     usr.IsActive == nil || *usr.IsActive,
		Role:         string(usr.Role),
		SiteID:       usr.SiteID,
		SmallGroupID: usr.SmallGroupID,
		PasswordHash: null.BytesFrom(usr.PasswordHash),
		CreatedAt:    usr.CreatedAt,
		UpdatedAt:    usr.UpdatedAt,
	}
	if !usr.LastLogin.IsZero() {
		du.LastLogin = null.TimeFrom(usr.LastLogin)
	}
	return du
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sql.DB, driverName string) *userRepository {
	return &userRepository{db: sqlx.NewDb(db, driverName)}
}

// uniquenessQuery builds the username/email collision query. The disjunction is
// parenthesized so the ID exclusion applies to both branches, not just email.
func uniquenessQuery(username, email string, excludedIDs []string) (string, []interface{}, error) {
	query := `SELECT username, email FROM "user" WHERE ((username = ? AND username <> '') OR (email = ? AND email <> ''))`
	if len(excludedIDs) > 0 {
		return sqlx.In(query+" AND id NOT IN (?)", username, email, excludedIDs)
	}
	return query, []interface{}{username, email}, nil
}

func (repo *userRepository) CheckUsernameUniqueness(username, email string, excludedUsers ...user.User) error {
	excludedIDs := make([]string, len(excludedUsers))
	for i, usr := range excludedUsers {
		excludedIDs[i] = usr.ID
	}

	query, args, err := uniquenessQuery(username, email, excludedIDs)
	if err != nil {
		return errors.Wrap(err, "building uniqueness query")
	}

	var matches []dbUser
	if err := repo.db.Select(&matches, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "checking uniqueness")
	}
	for _, m := range matches {
		if m.Username == username && username != "" {
			return user.ErrUsernameExists
		}
		if m.Email == email && email != "" {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	query := `
		INSERT INTO "user" (id, name, username, email, is_active, role, site_id, small_group_id, password_hash, created_at, updated_at, last_login)
		VALUES (:id, :name, :username, :email, :is_active, :role, :site_id, :small_group_id, :password_hash, :created_at, :updated_at, :last_login)`
	if _, err := repo.db.NamedExec(query, fromCore(usr)); err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	var dbUsrs []dbUser
	if err := repo.db.Select(&dbUsrs, allUsersQuery); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}

	usrs := make([]user.User, len(dbUsrs))
	for i, du := range dbUsrs {
		usrs[i] = du.toCore()
	}
	return usrs, nil
}

func (repo *userRepository) getBy(query string, args ...interface{}) (user.User, error) {
	var du dbUser
	if err := repo.db.Get(&du, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return du.toCore(), nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	return repo.getBy(`SELECT * FROM "user" WHERE id = $1`, id)
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	return repo.getBy(`SELECT * FROM "user" WHERE username = $1 AND username <> ''`, username)
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	return repo.getBy(`SELECT * FROM "user" WHERE email = $1 AND email <> ''`, email)
}

func (repo *userRepository) GetUserByUsernameOrEmail(username string) (user.User, error) {
	return repo.getBy(`SELECT * FROM "user" WHERE (username = $1 AND username <> '') OR (email = $1 AND email <> '')`, username)
}

func (repo *userRepository) UpdateUser(usr user.User, isActive ...*bool) (user.User, error) {
	// only save set fields
	set := "updated_at = :updated_at"
	if usr.Name != "" {
		set += ", name = :name"
	}
	if usr.Username != "" {
		set += ", username = :username"
	}
	if usr.Email != "" {
		set += ", email = :email"
	}
	if usr.Role != "" {
		set += ", role = :role, site_id = :site_id, small_group_id = :small_group_id"
	}
	if usr.PasswordHash != nil {
		set += ", password_hash = :password_hash"
	}
	if len(isActive) > 0 && isActive[0] != nil {
		usr.IsActive = isActive[0]
		set += ", is_active = :is_active"
	}
	if !usr.LastLogin.IsZero() {
		set += ", last_login = :last_login"
	}

	du := fromCore(usr)
	if du.UpdatedAt.IsZero() {
		du.UpdatedAt = time.Now().UTC()
	}
	res, err := repo.db.NamedExec(`UPDATE "user" SET `+set+` WHERE id = :id`, du)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return repo.GetUserByID(usr.ID)
}

func (repo *userRepository) DeleteUsersByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM "user" WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}
