package authz

import "gorm.io/gorm"

// Ensure Store implements Authorizer
var _ Authorizer = (*Store)(nil)

// Grant is the database row behind a role → permission grant.
type Grant struct {
	RoleID    string `gorm:"column:role_id;primaryKey"`
	Privilege string `gorm:"column:privilege;primaryKey"`
	Resource  string `gorm:"column:resource;primaryKey"`
}

func (Grant) TableName() string {
	return "permissions"
}

// Store implements Authorizer over a permissions table using GORM.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Allowed checks if any of the roles holds a grant matching p. A row
// is a match when privilege and resource equal the requested ones or
// are stored as the wildcard.
func (s *Store) Allowed(roles []string, p Permission) bool {
	if len(roles) == 0 {
		return false
	}
	var count int64
	s.db.Model(&Grant{}).
		Where("role_id IN ?", roles).
		Where("privilege IN ?", []string{p.Privilege, Wildcard}).
		Where("resource IN ?", []string{p.Resource, Wildcard}).
		Count(&count)
	return count > 0
}
