package aggregating

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var ErrInvalidMonthKey = errors.New("invalid month key, expected YYYY-MM")

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Tabela fixa de rótulos exibidos no dashboard, indexada pelo mês (0 = janeiro)
var monthLabels = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// NewMonthKey monta a chave YYYY-MM. Ano com 4 dígitos e mês com zero à esquerda
// garantem que a comparação de strings siga a ordem cronológica.
func NewMonthKey(year int, month time.Month) domain.MonthKey {
	return domain.MonthKey(fmt.Sprintf("%04d-%02d", year, int(month)))
}

// ParseMonthKey valida uma chave recebida de fora (ex.: parâmetro de rota)
func ParseMonthKey(value string) (domain.MonthKey, error) {
	if !monthKeyPattern.MatchString(value) {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonthKey, value)
	}
	return domain.MonthKey(value), nil
}

// MonthLabel retorna o rótulo curto do mês
func MonthLabel(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return monthLabels[month-1]
}

// LabelForKey retorna o rótulo curto de uma chave já validada
func LabelForKey(key domain.MonthKey) string {
	var year, month int
	if _, err := fmt.Sscanf(string(key), "%d-%d", &year, &month); err != nil {
		return ""
	}
	return MonthLabel(time.Month(month))
}
