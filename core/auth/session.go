package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
	"github.com/utsavdwivedi51/Attendance-ERP/core/user"
)

const audience = "attendance"

// Session is a snapshot of the authenticated account. It never carries the password.
type Session struct {
	ID    string    `json:"id"`
	Role  user.Role `json:"role"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Roll  string    `json:"roll,omitempty"`  // students only
	Class string    `json:"class,omitempty"` // students only
}

func (s Session) IsTeacher() bool { return s.Role == user.RoleTeacher }
func (s Session) IsStudent() bool { return s.Role == user.RoleStudent }

func teacherSession(usr user.User) Session {
	return Session{ID: usr.ID, Role: user.RoleTeacher, Name: usr.Name, Email: usr.Email}
}

func studentSession(stu student.Student) Session {
	return Session{
		ID:    stu.ID,
		Role:  user.RoleStudent,
		Name:  stu.Name,
		Email: stu.Email,
		Roll:  stu.Roll,
		Class: stu.Class,
	}
}

// Claims represents the session transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	Session Session `json:"session"`
}

// Tokens signs and verifies session tokens (HS256).
type Tokens struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secretKey, issuer string, ttl time.Duration) *Tokens {
	return &Tokens{key: []byte(secretKey), issuer: issuer, ttl: ttl, now: time.Now}
}

// Generate returns a signed token for sess, valid for the configured TTL.
func (t *Tokens) Generate(sess Session) (string, error) {
	now := t.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    t.issuer,
			Subject:   sess.ID,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Session: sess,
	}
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// Parse verifies token and returns the session it carries.
func (t *Tokens) Parse(token string) (Session, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (interface{}, error) { return t.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return Session{}, errors.Wrap(err, "parsing token")
	}
	if !claims.Session.Role.Valid() || claims.Session.ID == "" {
		return Session{}, errors.New("token carries no session")
	}
	return claims.Session, nil
}
