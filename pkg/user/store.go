package user

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	da "github.com/lintang-b-s/prefroute/pkg/datastructure"
	"github.com/lintang-b-s/prefroute/pkg/util"
	"go.uber.org/zap"
)

// Store in-memory users keyed by username, persisted as one json file.
type Store struct {
	mu           sync.RWMutex
	users        map[string]*UserState
	byToken      map[string]*UserState
	initialAlpha da.Preference
	log          *zap.Logger
}

func NewStore(initialAlpha da.Preference, log *zap.Logger) *Store {
	return &Store{
		users:        make(map[string]*UserState),
		byToken:      make(map[string]*UserState),
		initialAlpha: initialAlpha,
		log:          log,
	}
}

func (s *Store) Register(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", util.WrapErrorf(ErrEmptyUsername, util.ErrBadParamInput, "register")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return "", util.WrapErrorf(ErrUserExists, util.ErrConflict, "register %q", username)
	}
	us, err := newUserState(username, password, s.initialAlpha)
	if err != nil {
		return "", util.WrapErrorf(err, util.ErrInternalServerError, "register %q", username)
	}
	s.users[username] = us
	s.byToken[us.Token] = us
	s.log.Info("user registered", zap.String("username", username))
	return us.Token, nil
}

// Login checks the credentials and hands out a fresh token, invalidating the previous one.
func (s *Store) Login(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	s.mu.Lock()
	defer s.mu.Unlock()
	us, ok := s.users[username]
	if !ok || !us.credentialsValid(username, password) {
		return "", util.WrapErrorf(ErrInvalidCredentials, util.ErrUnauthorized, "login")
	}
	delete(s.byToken, us.Token)
	token, err := us.updateToken()
	if err != nil {
		return "", util.WrapErrorf(err, util.ErrInternalServerError, "login")
	}
	s.byToken[token] = us
	return token, nil
}

// callers hold s.mu.
func (s *Store) lookup(token string) (*UserState, error) {
	us, ok := s.byToken[token]
	if token == "" || !ok {
		return nil, util.WrapErrorf(ErrInvalidToken, util.ErrUnauthorized, "token lookup")
	}
	return us, nil
}

func (s *Store) Username(token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	us, err := s.lookup(token)
	if err != nil {
		return "", err
	}
	return us.Username, nil
}

func (s *Store) Preference(token string) (da.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	us, err := s.lookup(token)
	if err != nil {
		return da.Preference{}, err
	}
	return us.Alpha, nil
}

func (s *Store) SetPreference(token string, alpha da.Preference) error {
	if err := alpha.Validate(); err != nil {
		return util.WrapErrorf(err, util.ErrBadParamInput, "set preference")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	us, err := s.lookup(token)
	if err != nil {
		return err
	}
	us.Alpha = alpha
	return nil
}

func (s *Store) ResetPreference(token string) (da.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	us, err := s.lookup(token)
	if err != nil {
		return da.Preference{}, err
	}
	us.Alpha = s.initialAlpha
	return us.Alpha, nil
}

func (s *Store) Routes(token string) ([]da.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	us, err := s.lookup(token)
	if err != nil {
		return nil, err
	}
	routes := make([]da.Route, 0, len(us.DrivenRoutes))
	for _, r := range us.DrivenRoutes {
		routes = append(routes, r.Clone())
	}
	return routes, nil
}

// AddRoute stores route as a new driven route and returns it with its assigned id (ids start at 1).
func (s *Store) AddRoute(token string, route da.Route) (da.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	us, err := s.lookup(token)
	if err != nil {
		return da.Route{}, err
	}
	stored := route.Clone()
	stored.ID = us.NextRouteID
	us.NextRouteID++
	us.DrivenRoutes = append(us.DrivenRoutes, stored)
	return stored.Clone(), nil
}

func (s *Store) UpdateRoute(token string, id int, route da.Route) (da.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	us, err := s.lookup(token)
	if err != nil {
		return da.Route{}, err
	}
	i := us.routeIndex(id)
	if i < 0 {
		return da.Route{}, util.WrapErrorf(ErrRouteNotFound, util.ErrNotFound, "update route %d", id)
	}
	stored := route.Clone()
	stored.ID = id
	us.DrivenRoutes[i] = stored
	return stored.Clone(), nil
}

func (s *Store) DeleteRoute(token string, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	us, err := s.lookup(token)
	if err != nil {
		return err
	}
	i := us.routeIndex(id)
	if i < 0 {
		return util.WrapErrorf(ErrRouteNotFound, util.ErrNotFound, "delete route %d", id)
	}
	us.DrivenRoutes = append(us.DrivenRoutes[:i], us.DrivenRoutes[i+1:]...)
	return nil
}

// Reset drops all driven routes and restores the initial preference. credentials are kept.
func (s *Store) Reset(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	us, err := s.lookup(token)
	if err != nil {
		return err
	}
	us.reset(s.initialAlpha)
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Save writes all users to filename, through a temp file in the same directory.
func (s *Store) Save(filename string) error {
	s.mu.RLock()
	users := make([]*UserState, 0, len(s.users))
	for _, us := range s.users {
		users = append(users, us)
	}
	data, err := json.MarshalIndent(users, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	s.log.Info("users saved", zap.String("file", filename), zap.Int("users", len(users)))
	return os.Rename(tmp.Name(), filename)
}

// Load replaces the store content with filename. a missing file leaves the store empty.
func (s *Store) Load(filename string) error {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Info("no users file, starting empty", zap.String("file", filename))
		return nil
	}
	if err != nil {
		return err
	}

	var users []*UserState
	if err := json.Unmarshal(data, &users); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*UserState, len(users))
	s.byToken = make(map[string]*UserState, len(users))
	for _, us := range users {
		if us.DrivenRoutes == nil {
			us.DrivenRoutes = make([]da.Route, 0)
		}
		if us.NextRouteID <= 0 {
			us.NextRouteID = 1
			for _, r := range us.DrivenRoutes {
				us.NextRouteID = util.MaxG(us.NextRouteID, r.ID+1)
			}
		}
		s.users[us.Username] = us
		s.byToken[us.Token] = us
	}
	s.log.Info("users loaded", zap.String("file", filename), zap.Int("users", len(users)))
	return nil
}
