package notify

const disclaimerHTML = `<hr>
<p style="font-size:12px;color:gray;">
Disclaimer: This information is provided for educational purposes only.
It is sourced from public data on Investorgain.
Please verify independently before making any investment decisions.
</p>`

const emptyReportTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <title>{{.Subject}}</title>
</head>
<body>
  <p>No IPOs are currently open.</p>
  {{.Disclaimer}}
</body>
</html>`

const reportHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Subject}}</title>
  <style>
    table {
      border-collapse: collapse;
      width: 100%;
      font-family: Arial, sans-serif;
    }

    th, td {
      border: 1px solid #ddd;
      padding: 8px;
      text-align: left;
    }

    th {
      background-color: #4CAF50;
      color: white;
    }

    tr:nth-child(even) {
      background-color: #f9f9f9;
    }

    .highlight {
      background-color: #d8f5d2;
      font-weight: bold;
    }

    .note {
      margin-top: 20px;
      font-style: italic;
      color: #444;
    }
  </style>
</head>
<body>
  <h2>Currently Open IPOs</h2>
  <p>Here are the IPOs open for subscription today:</p>
  <table>
    <thead>
      <tr>
        <th>Name</th>
        <th>GMP</th>
        <th>🔥 Fire Rating</th>
        <th>Price/Share</th>
        <th>IPO Size</th>
        <th>Lot</th>
        <th>Subscription</th>
        <th>Min Investment</th>
        <th>Open</th>
        <th>Close</th>
        <th>Listing</th>
      </tr>
    </thead>
    <tbody>
      {{range .Listings}}
      <tr class="{{if .Highlighted}}highlight{{end}}">
        <td>{{.Name}}</td>
        <td>{{.GMPDisplay}}</td>
        <td>{{.FireRating}}</td>
        <td>₹{{.PriceText}}</td>
        <td>{{.IssueSize}}</td>
        <td>{{.LotText}}</td>
        <td>{{.Subscription}}</td>
        <td>{{.MinInvestment}}</td>
        <td>{{.Open}}</td>
        <td>{{.Close}}</td>
        <td>{{.ListingAt}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <p class="note">
    ✨ <b>Highlighted rows</b> meet three criteria: <b>GMP ≥ 20 %</b>,
    <b>🔥 Fire Rating ≥ 4</b>, and <b>Subscription ≥ 5×</b>.
    These IPOs may deserve closer attention, but always conduct your own research before investing.
  </p>
  <p class="note">
    💡 IPOs with high GMP, at least four 🔥, and strong subscription numbers can be considered for further evaluation.
  </p>
  {{.Disclaimer}}
</body>
</html>`
