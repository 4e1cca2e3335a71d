package output

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Film Dashboard</title>
<script src="{{.ScriptURL}}"></script>
<style>
:root { --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6; --muted: #6c757d; }
@media (prefers-color-scheme: dark) {
  :root { --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057; --muted: #adb5bd; }
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 1400px; margin: 0 auto; }
header { margin-bottom: 1.5rem; }
header h1 { font-size: 1.5rem; margin-bottom: .25rem; }
header p { color: var(--muted); font-size: .875rem; }
.charts { display: grid; grid-template-columns: repeat(2, 1fr); gap: 1rem; }
@media (max-width: 768px) { .charts { grid-template-columns: 1fr; } }
.chart-box { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; }
.chart-box.wide { grid-column: 1 / -1; }
.chart { width: 100%; height: 420px; }
</style>
</head>
<body>
<header>
<h1>Film Dashboard</h1>
<p>Genres: {{.GenreList}} &middot; Years: {{.Snapshot.Years.From}}-{{.Snapshot.Years.To}} &middot; Movie: {{.MovieLabel}} &middot; {{.Snapshot.Matched}} of {{.Movies}} movies &middot; generated {{.GeneratedAt}}</p>
</header>
<div class="charts">
{{- range $i, $f := .Figures}}
<div class="chart-box{{if eq $i 0}} wide{{end}}"><div class="chart" id="{{$f.ID}}"></div></div>
{{- end}}
</div>
<script>
(function() {
  var figures = {{json .Figures}};
  figures.forEach(function(f) {
    var el = document.getElementById(f.id);
    if (!el || typeof echarts === "undefined") { return; }
    var c = echarts.init(el);
    c.setOption(f.options);
    window.addEventListener("resize", function() { c.resize(); });
  });
})();
</script>
</body>
</html>
`
