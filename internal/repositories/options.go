package repositories

import "gorm.io/gorm"

// ListOptions narrows list queries. Zero values mean "no filter".
type ListOptions struct {
	Offset         int
	Limit          int
	IncludeDeleted bool
	Status         string
	MerchantID     uint
	Search         string
}

func (o ListOptions) paginate(q *gorm.DB) *gorm.DB {
	if o.Offset > 0 {
		q = q.Offset(o.Offset)
	}
	if o.Limit > 0 {
		q = q.Limit(o.Limit)
	}
	return q
}

func notDeleted(q *gorm.DB, includeDeleted bool) *gorm.DB {
	if includeDeleted {
		return q
	}
	return q.Where("is_deleted = ?", false)
}
