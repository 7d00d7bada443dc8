package domain

import "strings"

// Staff is an authenticated shop employee
// Пустой Barber означает менеджера, которому доступны календари всех барберов
type Staff struct {
	Username string
	Barber   string
}

// IsManager reports whether the staff member manages the whole shop
func (s Staff) IsManager() bool {
	return s.Barber == ""
}

// CanManage reports whether the staff member may act on the barber's calendar
func (s Staff) CanManage(barber string) bool {
	return s.IsManager() || strings.EqualFold(s.Barber, barber)
}
