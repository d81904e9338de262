// Package models contains data structures for the application's domain models.
package models

// Department is one of the fixed organisational units a member belongs to.
type Department string

// Departments of the ministry, in the order the registration form lists them.
const (
	DeptIgrejaInfantil      Department = "Igreja Infantil"
	DeptGrupoDeLouvor       Department = "Grupo de Louvor"
	DeptMidia               Department = "Mídia"
	DeptTecnica             Department = "Técnica"
	DeptProtocolos          Department = "Protocolos"
	DeptAcolhimento         Department = "Acolhimento"
	DeptAssistenciaSocial   Department = "Assistencia Social"
	DeptOrganizacaoEEventos Department = "Organização e Eventos"
	DeptFinancas            Department = "Finanças"
	DeptDiaconia            Department = "Diaconia"
	DeptClasseDeFundacao    Department = "Classe de Fundação"
	DeptLimpeza             Department = "Limpeza"
	DeptJuventude           Department = "Juventude"
	DeptEvangelizacao       Department = "Evangelização"
)

var allDepartments = []Department{
	DeptIgrejaInfantil,
	DeptGrupoDeLouvor,
	DeptMidia,
	DeptTecnica,
	DeptProtocolos,
	DeptAcolhimento,
	DeptAssistenciaSocial,
	DeptOrganizacaoEEventos,
	DeptFinancas,
	DeptDiaconia,
	DeptClasseDeFundacao,
	DeptLimpeza,
	DeptJuventude,
	DeptEvangelizacao,
}

// AllDepartments returns a copy of the department list in display order.
func AllDepartments() []Department {
	out := make([]Department, len(allDepartments))
	copy(out, allDepartments)
	return out
}

// Valid reports whether d is one of the known departments.
func (d Department) Valid() bool {
	switch d {
	case DeptIgrejaInfantil, DeptGrupoDeLouvor, DeptMidia, DeptTecnica,
		DeptProtocolos, DeptAcolhimento, DeptAssistenciaSocial, DeptOrganizacaoEEventos,
		DeptFinancas, DeptDiaconia, DeptClasseDeFundacao, DeptLimpeza,
		DeptJuventude, DeptEvangelizacao:
		return true
	}
	return false
}

// OwnsChildrenRegistry reports whether members of d are offered the children registry.
func (d Department) OwnsChildrenRegistry() bool {
	return d == DeptIgrejaInfantil
}
