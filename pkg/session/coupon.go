package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	CouponCookie = "cart_coupon"
	nonceSize    = 24
	cookieMaxAge = 24 * time.Hour
)

var ErrNoCoupon = errors.New("no coupon in session")

// CouponStore keeps the applied coupon code in a sealed client cookie until
// checkout commits.
type CouponStore struct {
	key    [32]byte
	Secure bool
}

type couponPayload struct {
	UserID uuid.UUID `json:"u"`
	Code   string    `json:"c"`
}

func NewCouponStore(secret []byte) *CouponStore {
	return &CouponStore{key: sha256.Sum256(secret), Secure: true}
}

func (s *CouponStore) Set(c echo.Context, userID uuid.UUID, code string) error {
	sealed, err := s.seal(couponPayload{UserID: userID, Code: code})
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     CouponCookie,
		Value:    sealed,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Get returns the code stored for userID. A cookie that does not open or
// belongs to another user reads as ErrNoCoupon.
func (s *CouponStore) Get(c echo.Context, userID uuid.UUID) (string, error) {
	ck, err := c.Cookie(CouponCookie)
	if err != nil || ck.Value == "" {
		return "", ErrNoCoupon
	}
	p, err := s.open(ck.Value)
	if err != nil || p.UserID != userID || p.Code == "" {
		return "", ErrNoCoupon
	}
	return p.Code, nil
}

func (s *CouponStore) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CouponCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *CouponStore) seal(p couponPayload) (string, error) {
	msg, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}
	box := secretbox.Seal(nonce[:], msg, &nonce, &s.key)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

func (s *CouponStore) open(v string) (couponPayload, error) {
	var p couponPayload
	box, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil || len(box) < nonceSize+secretbox.Overhead {
		return p, ErrNoCoupon
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	msg, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return p, ErrNoCoupon
	}
	if err := json.Unmarshal(msg, &p); err != nil {
		return p, ErrNoCoupon
	}
	return p, nil
}
