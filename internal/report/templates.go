package report

// htmlTemplate is the HTML template for frame log reports
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Name}} - Frame Time Report</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <style>
        :root {
            --bg: #f8fafc;
            --card: #ffffff;
            --text: #1e293b;
            --muted: #64748b;
            --border: #e2e8f0;
            --accent: #3b82f6;
            --bad: #ef4444;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.6;
        }
        .container { max-width: 1200px; margin: 0 auto; padding: 2rem; }
        .header, .section {
            background: var(--card);
            border: 1px solid var(--border);
            border-radius: 8px;
            padding: 1.5rem;
            margin-bottom: 1.5rem;
        }
        .header h1 { font-size: 1.5rem; }
        .header .meta { color: var(--muted); font-size: 0.9rem; }
        .metric-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 1rem; }
        .metric-card { border: 1px solid var(--border); border-radius: 6px; padding: 1rem; }
        .metric-card .label { color: var(--muted); font-size: 0.85rem; }
        .metric-card .value { font-size: 1.6rem; font-weight: 600; }
        .metric-card.low .value { color: var(--bad); }
        table { width: 100%; border-collapse: collapse; }
        th, td { text-align: left; padding: 0.4rem 0.6rem; border-bottom: 1px solid var(--border); }
        .chart-wrapper { position: relative; height: 360px; }
    </style>
</head>
<body>
    <div class="container">
        <header class="header">
            <h1>{{.Name}}</h1>
            <div class="meta">Source: {{.Source}} &middot; Duration: {{formatDuration .Duration}} &middot; Generated {{.GeneratedAt.Format "2006-01-02 15:04:05"}}</div>
        </header>

        <section class="section">
            <div class="metric-grid">
                <div class="metric-card"><div class="label">Frames</div><div class="value">{{.Summary.FrameCount}}</div></div>
                <div class="metric-card"><div class="label">Average FPS</div><div class="value">{{fps .Summary.AvgFPS}}</div></div>
                <div class="metric-card low"><div class="label">1% Low FPS</div><div class="value">{{fps .Summary.P1LowFPS}}</div></div>
                <div class="metric-card low"><div class="label">0.1% Low FPS</div><div class="value">{{fps .Summary.P01LowFPS}}</div></div>
            </div>
        </section>

        <section class="section">
            <table>
                <tr><th>Frame time</th><th>ms</th></tr>
                <tr><td>Average</td><td>{{ms .Summary.AvgFrametimeMs}}</td></tr>
                <tr><td>99th %ile</td><td>{{ms .Summary.P99FrametimeMs}}</td></tr>
                <tr><td>99.9th %ile</td><td>{{ms .Summary.P999FrametimeMs}}</td></tr>
                <tr><td>Min</td><td>{{durMs .Distribution.Min}}</td></tr>
                <tr><td>p50</td><td>{{durMs .Distribution.P50}}</td></tr>
                <tr><td>p90</td><td>{{durMs .Distribution.P90}}</td></tr>
                <tr><td>p95</td><td>{{durMs .Distribution.P95}}</td></tr>
                <tr><td>Max</td><td>{{durMs .Distribution.Max}}</td></tr>
                <tr><td>Std Dev</td><td>{{durMs .Distribution.StdDev}}</td></tr>
            </table>
        </section>

        {{if .Series}}
        <section class="section">
            <div class="chart-wrapper"><canvas id="frametimeChart"></canvas></div>
        </section>
        {{end}}
    </div>

    <script>
        const seriesData = {{.SeriesJSON}};

        document.addEventListener('DOMContentLoaded', function() {
            const ctx = document.getElementById('frametimeChart');
            if (!ctx || !seriesData || seriesData.length === 0) {
                return;
            }
            new Chart(ctx.getContext('2d'), {
                type: 'line',
                data: {
                    labels: seriesData.map(p => (p.offsetMs / 1000).toFixed(1) + 's'),
                    datasets: [{
                        label: 'Frame time (ms)',
                        data: seriesData.map(p => p.frametimeMs),
                        borderColor: '#3b82f6',
                        backgroundColor: 'transparent',
                        pointRadius: 0,
                        borderWidth: 1,
                    }]
                },
                options: {
                    responsive: true,
                    maintainAspectRatio: false,
                    animation: false,
                    scales: { y: { beginAtZero: true, title: { display: true, text: 'ms' } } }
                }
            });
        });
    </script>
</body>
</html>`
