package user

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"

	da "github.com/lintang-b-s/prefroute/pkg/datastructure"
	"golang.org/x/crypto/sha3"
)

// UserState everything the server keeps about one user.
type UserState struct {
	Username     string        `json:"username"`
	Hash         []byte        `json:"hash"`
	Token        string        `json:"token"`
	DrivenRoutes []da.Route    `json:"driven_routes"`
	Alpha        da.Preference `json:"alpha"`
	NextRouteID  int           `json:"next_route_id"`
}

func newUserState(username, password string, alpha da.Preference) (*UserState, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	return &UserState{
		Username:     username,
		Hash:         hashPassword(password),
		Token:        token,
		DrivenRoutes: make([]da.Route, 0),
		Alpha:        alpha,
		NextRouteID:  1,
	}, nil
}

func (us *UserState) credentialsValid(username, password string) bool {
	return us.Username == username && bytes.Equal(us.Hash, hashPassword(password))
}

func (us *UserState) updateToken() (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	us.Token = token
	return token, nil
}

func (us *UserState) reset(alpha da.Preference) {
	us.DrivenRoutes = make([]da.Route, 0)
	us.Alpha = alpha
	us.NextRouteID = 1
}

func (us *UserState) routeIndex(id int) int {
	for i, r := range us.DrivenRoutes {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func hashPassword(password string) []byte {
	h := sha3.Sum512([]byte(password))
	return h[:]
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
