// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package web

const pageHead = `<!DOCTYPE html>
<html>
<head>
	<title>Voronoi diagram</title>
	<style>
		body {
			background-color: #1F1F1F;
			color: #d3d3d3;
			font-family: Consolas, monospace;
		}

		#container {
			display: flex;
			width: 100%;
			min-height: 100vh;
			box-sizing: border-box;
		}

		#left-container {
			width: 60%;
			padding: 10px;
			box-sizing: border-box;
		}

		#right-container {
			width: 40%;
			padding: 10px;
			box-sizing: border-box;
			border-left: 5px solid #757575;
			overflow: auto;
			background-color: #1e1e1e;
		}

		#logs pre {
			white-space: pre-wrap;
			word-wrap: break-word;
			font-family: Consolas, monospace;
		}

		.error {
			color: #ff5555;
		}

		input[type="number"],
		input[type="submit"],
		textarea {
			background-color: #2b2b2b;
			color: #d3d3d3;
			border: 1px solid #444;
			padding: 5px;
			margin: 5px 0;
			border-radius: 4px;
		}

		input[type="submit"]:hover {
			background-color: #444;
			cursor: pointer;
		}

		::-webkit-scrollbar {
			width: 8px;
		}

		::-webkit-scrollbar-thumb {
			background-color: #444;
			border-radius: 10px;
		}

		::-webkit-scrollbar-track {
			background-color: #2b2b2b;
		}
	</style>
</head>
<body>
	<div id="container">
		<div id="left-container">
			<h1>Voronoi diagram</h1>
`

// pageForm is a format string; every verb receives an escaped value.
const pageForm = `			<form id="diagram-form" method="POST">
				<label for="points">Points, one "x,y" per line (leave empty for random):</label><br>
				<textarea id="points" name="points" rows="8" cols="40">%s</textarea><br>
				<label for="count">Random points (n):</label>
				<input type="number" id="count" name="count" value="%d" min="1" max="%d">
				<label for="seed">Seed:</label>
				<input type="number" id="seed" name="seed" value="%d"><br>
				<label for="width">Width (W):</label>
				<input type="number" id="width" name="width" value="%g" step="any">
				<label for="height">Height (H):</label>
				<input type="number" id="height" name="height" value="%g" step="any"><br>
				<label for="relax">Relaxation steps:</label>
				<input type="number" id="relax" name="relax" value="%d" min="0" max="%d"><br>
				<input type="submit" value="Build">
			</form>
`

const pageLogs = `		</div>
		<div id="right-container">
			<h1>Logs</h1>
			<div id="logs">
`

const pageTail = `
			</div>
		</div>
	</div>
</body>
</html>
`
