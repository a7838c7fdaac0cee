package server

// indexPage is the single-page UI: one button to start an analysis run and a
// poller that renders the model's answer once the job finishes.
const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>failsight</title>
<style>
body { font-family: sans-serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
button { padding: 0.5rem 1.5rem; font-size: 1rem; cursor: pointer; }
pre { background: #f6f6f6; padding: 1rem; white-space: pre-wrap; border-radius: 4px; }
.meta { color: #666; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>failsight</h1>
<p>Run LLM analysis of the configured commit history and HTML test reports.</p>
<button id="run">Run analysis</button>
<p class="meta" id="status"></p>
<pre id="output" hidden></pre>
<script>
const status = document.getElementById('status');
const output = document.getElementById('output');
const button = document.getElementById('run');

button.addEventListener('click', async () => {
  button.disabled = true;
  output.hidden = true;
  status.textContent = 'Submitting...';
  try {
    const resp = await fetch('/api/analyze', { method: 'POST' });
    if (!resp.ok) throw new Error('submit failed: ' + resp.status);
    const { job_id } = await resp.json();
    status.textContent = 'Analyzing (job ' + job_id + ')...';
    await poll(job_id);
  } catch (err) {
    status.textContent = 'Error: ' + err.message;
  } finally {
    button.disabled = false;
  }
});

async function poll(jobID) {
  for (;;) {
    await new Promise((resolve) => setTimeout(resolve, 2000));
    const resp = await fetch('/api/jobs/' + jobID);
    if (!resp.ok) throw new Error('job lookup failed: ' + resp.status);
    const job = await resp.json();
    if (job.status === 'failed') throw new Error(job.error);
    if (job.status === 'done') {
      const result = job.result;
      status.textContent = 'Analyzed ' + result.commits_analyzed + ' commits and ' +
        result.reports_analyzed + ' reports at ' + result.timestamp;
      output.textContent = result.llm_analysis;
      output.hidden = false;
      return;
    }
  }
}
</script>
</body>
</html>
`
