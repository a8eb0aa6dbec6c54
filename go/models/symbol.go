package models

import (
	"github.com/lunixbochs/fvbommel-util/sortorder"
)

type Symbol struct {
	Name     string
	Addr     uint64
	Resolved bool
}

type SymbolNameSort []Symbol

func (s SymbolNameSort) Len() int           { return len(s) }
func (s SymbolNameSort) Less(i, j int) bool { return sortorder.NaturalLess(s[i].Name, s[j].Name) }
func (s SymbolNameSort) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

type SymbolAddrSort []Symbol

func (s SymbolAddrSort) Len() int { return len(s) }
func (s SymbolAddrSort) Less(i, j int) bool {
	if s[i].Addr == s[j].Addr {
		return s[i].Name < s[j].Name
	}
	return s[i].Addr < s[j].Addr
}
func (s SymbolAddrSort) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
