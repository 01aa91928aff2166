package report

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/nwillems/confluence-lifecycle/models"
)

// bodyTemplate is the storage-format body of the report page. Confluence
// renders <ac:image>/<ri:attachment> as an inline view of the attached pie.
const bodyTemplate = `
<h2>Warning!</h2>
<p>This page is <strong>automated!</strong> Do not edit it directly or manually. Your work will be lost when the automated process next runs.</p>

<h2>The Latest Run</h2>
<ol>
  <li>The last run was on {{.RunDate}}</li>
  <li>Total number of pages managed: {{.Total}}</li>
</ol>

<h2>The Pie</h2>
<p>A visualisation of how the last run applied labels to each page it manages. The pie is not edible.</p>
<ac:image ac:align="center" ac:height="300">
  <ri:attachment ri:filename="{{.ChartFilename}}" />
</ac:image>

<h2>Latest Figures</h2>
<p>Here are the latest figures from the latest run:</p>
<table>
  <tbody>
    <tr>
      <th>Fresh</th>
      <th>Stale</th>
      <th>Rotten</th>
    </tr>
    <tr>
      <td>{{.Fresh.Total}}</td>
      <td>{{.Stale.Total}}</td>
      <td>{{.Rotten.Total}}</td>
    </tr>
  </tbody>
</table>

<h2>Change Statistics</h2>
<p>Below we list statistics about how many changes were made in each category:</p>
<table>
  <tbody>
    <tr>
      <th>Fresh</th>
      <th>Stale</th>
      <th>Rotten</th>
    </tr>
    <tr>
      <td>{{.Fresh.Changed}}</td>
      <td>{{.Stale.Changed}}</td>
      <td>{{.Rotten.Changed}}</td>
    </tr>
  </tbody>
</table>

<h2>Lifecycle Statistics</h2>
<p>These counters are the number of pages with lifecycle_ignore labels that resulted in no change, even if change was desired by the algorithm.</p>
<p>For example, if the counter for "rotten" says 100, then on the last run 100 pages were detected as being rotten but were not changed as they had a lifecycle_ignore policy in place.</p>
<table>
  <tbody>
    <tr>
      <th>Fresh</th>
      <th>Stale</th>
      <th>Rotten</th>
    </tr>
    <tr>
      <td>{{.Fresh.Suppressed}}</td>
      <td>{{.Stale.Suppressed}}</td>
      <td>{{.Rotten.Suppressed}}</td>
    </tr>
  </tbody>
</table>
`

var reportTemplate = template.Must(template.New("report").Parse(bodyTemplate))

type bodyData struct {
	RunDate       string
	Total         int
	ChartFilename string
	Fresh         models.PhaseTally
	Stale         models.PhaseTally
	Rotten        models.PhaseTally
}

// RenderBody renders the storage-format report body for a run.
func RenderBody(stats *models.RunStats, runDate time.Time) (string, error) {
	data := bodyData{
		RunDate:       runDate.Format(time.ANSIC),
		Total:         stats.TotalPages(),
		ChartFilename: ChartFilename,
		Fresh:         stats.Fresh,
		Stale:         stats.Stale,
		Rotten:        stats.Rotten,
	}

	var sb strings.Builder
	if err := reportTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("execute report template: %w", err)
	}

	return sb.String(), nil
}
