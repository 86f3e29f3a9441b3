package auth

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/mgarrido/chatforge/internal/infra/sqlite"
	pkgauth "github.com/mgarrido/chatforge/pkg/auth"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret-key-32-chars-min!!!")
	os.Exit(m.Run())
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRegister_CreatesUserAndToken(t *testing.T) {
	t.Parallel()

	svc := NewService(setupDB(t))

	res, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Register() error = %v; want nil", err)
	}
	if res.UserID == "" || res.Token == "" {
		t.Fatalf("Register() = %+v; want non-empty user id and token", res)
	}

	claims, err := pkgauth.ParseJWT(res.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != res.UserID {
		t.Errorf("token UserID = %q; want %q", claims.UserID, res.UserID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := NewService(setupDB(t))
	in := RegisterInput{Email: "dup@example.com", Password: "hunter2hunter2"}

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	_, err := svc.Register(context.Background(), in)
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("second Register() error = %v; want ErrEmailAlreadyExists", err)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc := NewService(setupDB(t))
	reg, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ada@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		res, err := svc.Login(context.Background(), LoginInput{
			Email:    "ada@example.com",
			Password: "correct-password",
		})
		if err != nil {
			t.Fatalf("Login() error = %v; want nil", err)
		}
		if res.UserID != reg.UserID {
			t.Errorf("Login() UserID = %q; want %q", res.UserID, reg.UserID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{
			Email:    "ada@example.com",
			Password: "wrong",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v; want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v; want ErrInvalidCredentials", err)
		}
	})
}

func TestGetUser(t *testing.T) {
	t.Parallel()

	svc := NewService(setupDB(t))
	reg, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatal(err)
	}

	u, err := svc.GetUser(context.Background(), reg.UserID)
	if err != nil {
		t.Fatalf("GetUser() error = %v; want nil", err)
	}
	if u.Email != "ada@example.com" {
		t.Errorf("GetUser().Email = %q; want registered email", u.Email)
	}
	if u.CreatedAt.IsZero() {
		t.Error("GetUser().CreatedAt is zero")
	}
}
