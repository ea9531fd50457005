package dashboard

import (
	"html/template"
	"net/http"
)

type pageData struct {
	WebSocketURL string
}

func (app *App) pageHandler(w http.ResponseWriter, r *http.Request) {
	e := pageData{
		WebSocketURL: "ws://" + r.Host + "/ws",
	}
	homeTemplate.Execute(w, e)
}

var homeTemplate = template.Must(template.New("").Parse(`
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>F1 Season Statistics</title>
  <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.0/dist/chart.umd.min.js"></script>
  <style>
    body { font-family: sans-serif; margin: 16px; }
    table { border-collapse: collapse; }
    th, td { border: 1px solid #ccc; padding: 4px 8px; }
    th { cursor: pointer; background: #f4f4f4; }
    th.asc::after { content: " ▲"; }
    th.desc::after { content: " ▼"; }
    .charts { display: grid; grid-template-columns: 1fr 1fr; gap: 24px; margin-top: 24px; }
    .panel { min-height: 320px; }
  </style>
</head>
<body>
  <h1>F1 Season Statistics</h1>

  <table id="standings"><thead></thead><tbody></tbody></table>

  <div class="charts">
    <div class="panel"><canvas id="pointsChart"></canvas></div>
    <div class="panel"><canvas id="lapsChart"></canvas></div>
    <div class="panel"><canvas id="battlesChart"></canvas></div>
    <div class="panel"><canvas id="battlessprintChart"></canvas></div>
  </div>

  <h2>Fastest pit stops</h2>
  <ol id="pitstops"></ol>

  <script>
    const wsUrl = '{{ .WebSocketURL }}';
    const chartHandles = new Map();

    async function loadStandings(sortColumn) {
      let url = '/api/standings';
      if (sortColumn !== undefined) {
        url += '?sort=' + sortColumn;
      }
      const response = await fetch(url);
      if (!response.ok) {
        return;
      }
      const standings = await response.json();
      renderStandings(standings);
    }

    function renderStandings(standings) {
      const head = document.querySelector('#standings thead');
      const body = document.querySelector('#standings tbody');
      head.innerHTML = '';
      body.innerHTML = '';

      const headerRow = document.createElement('tr');
      standings.columns.forEach((name, i) => {
        const th = document.createElement('th');
        th.textContent = name;
        // only the invoked column carries a direction marker
        if (i === standings.sort.column && standings.sort.direction !== '') {
          th.classList.add(standings.sort.direction);
        }
        th.addEventListener('click', () => loadStandings(i));
        headerRow.appendChild(th);
      });
      head.appendChild(headerRow);

      for (const row of standings.rows) {
        const tr = document.createElement('tr');
        for (const cell of row) {
          const td = document.createElement('td');
          td.textContent = cell;
          tr.appendChild(td);
        }
        body.appendChild(tr);
      }
    }

    async function loadChart(name, mountId) {
      const response = await fetch('/api/charts/' + name);
      if (!response.ok) {
        return;
      }
      const config = await response.json();
      drawChart(mountId, config);
    }

    function drawChart(mountId, config) {
      const existing = chartHandles.get(mountId);
      if (existing) {
        existing.destroy();
      }
      const ctx = document.getElementById(mountId);
      const handle = new Chart(ctx, toChartJS(config));
      chartHandles.set(mountId, handle);
    }

    function toChartJS(config) {
      const datasets = config.datasets.map(ds => ({
        label: ds.label,
        data: ds.data,
        backgroundColor: ds.backgroundColor,
        pointLabels: ds.pointLabels,
      }));
      const options = {
        plugins: {
          title: { display: true, text: config.title },
          legend: { display: config.legend },
          tooltip: { callbacks: { label: item => tooltipLabel(config, item) } },
        },
      };
      if (config.kind === 'pie') {
        return { type: 'pie', data: { labels: config.labels, datasets: datasets }, options: options };
      }
      options.indexAxis = 'y';
      options.scales = {
        x: {
          stacked: config.stacked,
          beginAtZero: config.beginAtZero,
          ticks: config.absTicks ? { callback: v => Math.abs(v) } : {},
        },
        y: { stacked: config.stacked },
      };
      return { type: 'bar', data: { labels: config.labels, datasets: datasets }, options: options };
    }

    function tooltipLabel(config, item) {
      const ds = config.datasets[item.datasetIndex];
      const value = ds.data[item.dataIndex];
      if (config.kind === 'pie') {
        return item.label + ': ' + value + ' ' + config.unit;
      }
      if (config.kind === 'diverging') {
        const name = ds.pointLabels ? ds.pointLabels[item.dataIndex] : ds.label;
        return name + ': ' + Math.abs(value) + ' ' + config.unit;
      }
      return value + ' ' + config.unit;
    }

    async function loadPitstops() {
      const response = await fetch('/api/pitstops');
      if (!response.ok) {
        return;
      }
      const stops = await response.json();
      const list = document.getElementById('pitstops');
      list.innerHTML = '';
      for (const stop of stops) {
        const li = document.createElement('li');
        li.textContent = stop.rank + '. ' + stop.driver + ' (' + stop.team + ') ' + stop.time;
        list.appendChild(li);
      }
    }

    const panels = {
      'drivers.json': () => { loadStandings(); loadChart('points', 'pointsChart'); loadChart('laps', 'lapsChart'); },
      'driversbattles.json': () => loadChart('battles', 'battlesChart'),
      'driversbattlessprint.json': () => loadChart('battlessprint', 'battlessprintChart'),
      'pitstops.json': () => loadPitstops(),
    };

    for (const load of Object.values(panels)) {
      load();
    }

    const socket = new WebSocket(wsUrl);
    socket.addEventListener('open', () => socket.send('start'));
    socket.addEventListener('message', (event) => {
      const message = JSON.parse(event.data);
      if (message.type === 'refresh' && panels[message.resource]) {
        panels[message.resource]();
      }
    });
  </script>
</body>
</html>
`))
