// Package userrepo is the registry of known users, loaded once at startup.
package userrepo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"pancakehouse/internal/core/domain/model/user"
	"pancakehouse/internal/pkg/errs"
)

// UserDirectory implements ports.UserDirectory. It is read-only after
// construction and therefore safe for concurrent use without locking.
type UserDirectory struct {
	users map[string]user.User
}

// NewUserDirectory registers users. Duplicate names are rejected.
func NewUserDirectory(users ...user.User) (*UserDirectory, error) {
	d := &UserDirectory{users: make(map[string]user.User, len(users))}

	for _, u := range users {
		if err := u.Validate(); err != nil {
			return nil, err
		}
		if _, exists := d.users[u.Name()]; exists {
			return nil, errs.NewIllegalStateErrorWithCause("user", fmt.Errorf("%s is registered twice", u.Name()))
		}
		d.users[u.Name()] = u
	}

	return d, nil
}

// Lookup returns the registered user with name.
func (d *UserDirectory) Lookup(name string) (user.User, error) {
	u, ok := d.users[name]
	if !ok {
		return user.User{}, errs.NewObjectNotFoundError("user", name)
	}
	return u, nil
}

// Names lists registered users alphabetically.
func (d *UserDirectory) Names() []string {
	names := make([]string, 0, len(d.users))
	for n := range d.users {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultUsers are registered when no users file is configured: two customers
// plus the crews the pipelines act as.
func DefaultUsers(kitchenCrew, deliveryCrew string) []user.User {
	customer := map[user.Resource]user.Privilege{user.ResourceOrder: user.All}

	alice, _ := user.NewUser("alice", customer)
	bob, _ := user.NewUser("bob", customer)
	kitchen, _ := user.NewUser(kitchenCrew, map[user.Resource]user.Privilege{
		user.ResourceKitchen: user.Read | user.Update,
	})
	delivery, _ := user.NewUser(deliveryCrew, map[user.Resource]user.Privilege{
		user.ResourceDelivery: user.Read | user.Update,
	})

	return []user.User{alice, bob, kitchen, delivery}
}

type usersFileDTO struct {
	Users []userDTO `json:"users"`
}

type userDTO struct {
	Name       string            `json:"name"`
	Privileges map[string]string `json:"privileges"`
}

// LoadUsers reads users from a JSON document of the form
//
//	{"users": [{"name": "alice", "privileges": {"order": "CRUD"}}]}
//
// Privileges use the CRUD letter form of user.ParsePrivilege.
func LoadUsers(r io.Reader) ([]user.User, error) {
	var doc usersFileDTO
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]user.User, 0, len(doc.Users))
	var problems []error
	for i, dto := range doc.Users {
		u, err := dto.toDomain()
		if err != nil {
			problems = append(problems, fmt.Errorf("user #%d: %w", i, err))
			continue
		}
		users = append(users, u)
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return users, nil
}

// LoadUsersFile opens path and passes it to LoadUsers.
func LoadUsersFile(path string) ([]user.User, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadUsers(f)
}

func (dto userDTO) toDomain() (user.User, error) {
	privileges := make(map[user.Resource]user.Privilege, len(dto.Privileges))
	for resource, codes := range dto.Privileges {
		p, err := user.ParsePrivilege(codes)
		if err != nil {
			return user.User{}, err
		}
		privileges[user.Resource(resource)] = p
	}
	return user.NewUser(dto.Name, privileges)
}
