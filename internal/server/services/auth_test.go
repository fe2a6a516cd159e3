package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/nutriportal/internal/common"
	"github.com/dmitrijs2005/nutriportal/internal/server/auth"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registered(t *testing.T) (*fixture, string) {
	t.Helper()
	f := newFixture(t)
	n, err := f.reg.Register(context.Background(), ana())
	require.NoError(t, err)
	return f, n.ID
}

func TestLogin_Success(t *testing.T) {
	f, id := registered(t)

	res, err := f.auth.Login(context.Background(), LoginInput{Email: "ana@x.com", Senha: "Abcd1234"})
	require.NoError(t, err)

	assert.Equal(t, id, res.Account.ID)
	assert.Equal(t, "Ana Silva", res.Account.Name)
	assert.Equal(t, "ana@x.com", res.Account.Email)
	assert.WithinDuration(t, time.Now().Add(common.SessionTTL), res.ExpiresAt, 5*time.Second)

	claims, err := f.auth.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.Subject)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, 8*time.Hour, claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time))

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Logins.WithLabelValues("ok")))
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	f, id := registered(t)

	res, err := f.auth.Login(context.Background(), LoginInput{Email: " ANA@X.COM", Senha: "Abcd1234"})
	require.NoError(t, err)
	assert.Equal(t, id, res.Account.ID)
}

func TestLogin_WrongPasswordAndUnknownEmailAreIndistinguishable(t *testing.T) {
	f, _ := registered(t)

	_, wrongPass := f.auth.Login(context.Background(), LoginInput{Email: "ana@x.com", Senha: "wrong"})
	_, unknown := f.auth.Login(context.Background(), LoginInput{Email: "nobody@x.com", Senha: "Abcd1234"})

	assert.Same(t, common.ErrInvalidCredentials, wrongPass)
	assert.Same(t, common.ErrInvalidCredentials, unknown)
	assert.Equal(t, 1, f.hasher.compares)
	assert.Equal(t, 1, f.hasher.dummies)
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.Logins.WithLabelValues("unauthorized")))
}

func TestLogin_Validation(t *testing.T) {
	f := newFixture(t)
	f.repo.findErr = errors.New("store must not be touched")

	_, err := f.auth.Login(context.Background(), LoginInput{Email: "not-an-email", Senha: ""})

	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Zero(t, f.hasher.dummies)
}

func TestLogin_LongEmailSkipsStore(t *testing.T) {
	f := newFixture(t)
	f.repo.findErr = errors.New("store must not be touched")

	_, err := f.auth.Login(context.Background(), LoginInput{
		Email: strings.Repeat("a", 64) + "@" + strings.Repeat("b", 300) + ".com",
		Senha: "Abcd1234",
	})

	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "email", verr.Fields[0].Field)
	assert.Equal(t, "max", verr.Fields[0].Rule)
	assert.Zero(t, f.hasher.dummies)
}

func TestLogin_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.findErr = errors.New("conn refused")

	_, err := f.auth.Login(context.Background(), LoginInput{Email: "ana@x.com", Senha: "Abcd1234"})

	assert.Equal(t, common.KindInternal, common.KindOf(err))
	assert.NotErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_SigningFailure(t *testing.T) {
	f, _ := registered(t)
	f.auth.issuer = auth.NewTokenIssuer(nil)

	_, err := f.auth.Login(context.Background(), LoginInput{Email: "ana@x.com", Senha: "Abcd1234"})

	assert.Equal(t, common.KindInternal, common.KindOf(err))
}

func TestMe(t *testing.T) {
	f, id := registered(t)

	p, err := f.auth.Me(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, "Ana Silva", p.Name)
	assert.Equal(t, "ana@x.com", p.Email)
}

func TestMe_UnknownAccount(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Me(context.Background(), "00000000-0000-0000-0000-000000000042")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestMe_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.findErr = errors.New("timeout")

	_, err := f.auth.Me(context.Background(), "x")
	assert.Equal(t, common.KindInternal, common.KindOf(err))
}

func TestVerify_RejectsGarbage(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Verify("not.a.token")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
