package site

import (
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/table"
)

type queriesView struct {
	Questions []string
	Label     string
	Result    *table.Result
}
