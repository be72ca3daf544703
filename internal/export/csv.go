package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// CSVHeader is the first record of every CSV export.
var CSVHeader = []string{
	"Titre",
	"Description",
	"Client",
	"Statut",
	"Priorité",
	"Deadline",
	"Budget",
	"Heures estimées",
	"Nombre de tâches",
	"Date de création",
}

// WriteCSV writes rows as comma separated values. The header is written even
// when rows is empty. Missing values are left blank.
func WriteCSV(w io.Writer, rows []Row, loc *time.Location) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.Title,
			row.Description,
			row.ClientName,
			StatusLabel(row.Status),
			PriorityLabel(row.Priority),
			"",
			"",
			"",
			strconv.FormatInt(row.TasksCount, 10),
			FormatDate(row.CreatedAt, loc),
		}
		if row.Deadline != nil {
			record[5] = FormatDate(*row.Deadline, loc)
		}
		if row.Budget != nil {
			record[6] = FormatMoney(*row.Budget)
		}
		if row.EstimatedHours != nil {
			record[7] = FormatNumber(*row.EstimatedHours)
		}

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
