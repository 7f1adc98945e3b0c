package auth

import (
	"context"
	"errors"
	"testing"

	domain "campus/backend/internal/domain/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User

	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*domain.User{},
		byID:    map[string]*domain.User{},
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return domain.ErrEmailExists
	}
	stored := *user
	f.byEmail[user.Email] = &stored
	f.byID[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copy := *user
	return &copy, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copy := *user
	return &copy, nil
}

type fakeTokenManager struct {
	validateErr error
}

func (f *fakeTokenManager) Generate(userID string) (string, error) {
	return "tok:" + userID, nil
}

func (f *fakeTokenManager) Validate(token string) (string, error) {
	if f.validateErr != nil {
		return "", f.validateErr
	}
	if len(token) < 4 || token[:4] != "tok:" {
		return "", errors.New("bad token")
	}
	return token[4:], nil
}

func TestRegister_StripsPasswordHash(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewService(repo, &fakeTokenManager{})

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:            "A@X.com ",
		Password:         "Pw1!",
		Name:             "Alice",
		EnrollmentNumber: "EN12345",
		Branch:           "Computer Science",
		Year:             2,
		Role:             "student",
	})
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, domain.RoleStudent, user.Role)
	assert.NotEmpty(t, user.ID)

	stored := repo.byEmail["a@x.com"]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "Pw1!", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Pw1!")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewService(repo, &fakeTokenManager{})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "b@x.com", Password: "Pw1!"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "b@x.com", Password: "other"})
	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestRegister_InvalidRole(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeUserRepo(), &fakeTokenManager{})
	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "c@x.com",
		Password: "Pw1!",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestRegister_DefaultsToStudent(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeUserRepo(), &fakeTokenManager{})
	user, err := svc.Register(context.Background(), RegisterInput{Email: "d@x.com", Password: "Pw1!"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, user.Role)
}

func TestLogin_TokenResolvesSameIdentity(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewService(repo, &fakeTokenManager{})
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "Pw1!"})
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, domain.Credentials{Email: "a@x.com", Password: "Pw1!"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	resolved, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resolved.ID)
	assert.Empty(t, resolved.PasswordHash)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewService(repo, &fakeTokenManager{})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "Pw1!"})
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, domain.Credentials{Email: "a@x.com", Password: "nope"})
	_, _, unknownEmail := svc.Login(ctx, domain.Credentials{Email: "ghost@x.com", Password: "Pw1!"})

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestVerifyToken_InvalidToken(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeUserRepo(), &fakeTokenManager{validateErr: errors.New("expired")})
	_, err := svc.VerifyToken(context.Background(), "whatever")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifyToken_DeletedIdentity(t *testing.T) {
	t.Parallel()

	// Token validates but the user no longer exists.
	svc := NewService(newFakeUserRepo(), &fakeTokenManager{})
	_, err := svc.VerifyToken(context.Background(), "tok:gone-user")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestHasAnyRole(t *testing.T) {
	t.Parallel()

	student := &domain.User{Role: domain.RoleStudent}
	teacher := &domain.User{Role: domain.RoleTeacher}
	admin := &domain.User{Role: domain.RoleAdmin}

	assert.False(t, student.HasAnyRole(domain.RoleAdmin, domain.RoleTeacher))
	assert.True(t, teacher.HasAnyRole(domain.RoleAdmin, domain.RoleTeacher))
	assert.True(t, admin.HasAnyRole(domain.RoleAdmin, domain.RoleTeacher))

	var nobody *domain.User
	assert.False(t, nobody.HasAnyRole(domain.RoleAdmin))
}
