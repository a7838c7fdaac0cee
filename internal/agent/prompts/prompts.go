package prompts

// *** Failure Analysis Prompts ***

var analysisSystemPrompt = `You are an expert QA engineer analyzing test failures and commit history.`

var analysisUserPromptTemplate = `You are a QA test analysis expert. Analyze the following commit history and HTML test execution reports to identify root causes of test failures.

COMMIT HISTORY (Last %d commits):
%s

TEST EXECUTION REPORTS (Raw HTML):
%s

Please analyze the HTML reports and provide:
1. Root cause analysis of any test failures
2. Which commits might have introduced the issues
3. Specific file/line references from error stack traces
4. Exact error messages and their meanings
5. Actionable recommendations to fix the issues
6. Patterns or trends you observe

Be concise, specific, and actionable.`
