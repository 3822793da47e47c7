package parser

// BillPagePrompt is the fixed extraction prompt sent with every page image.
// The summary-row exclusions here are intentionally duplicated by the
// aggregator's keyword filter: the prompt asks nicely, the filter enforces.
const BillPagePrompt = `You are an invoice extraction engine.

For this single page of a bill/invoice:

1. Determine the page type:
   - "Bill Detail"    : pages that list line items in detail
   - "Final Bill"     : overall summary / final total page
   - "Pharmacy"       : medicine / pharmacy billing pages

2. Extract ONLY the line items (rows) from this page.
   A line item is a row with:
   - an item name
   - a quantity
   - a rate (price per unit)
   - an amount (net amount for that row, after discounts)

3. Ignore the following kinds of rows:
   - Subtotal / Total / Grand Total / Net Amount Payable
   - Tax, GST, VAT, CGST, SGST, service charges
   - Round off / rounding adjustment
   - Payment mode, balances, any non-item text.

Return STRICT JSON ONLY in this shape:

{
  "page_no": "string",
  "page_type": "Bill Detail | Final Bill | Pharmacy",
  "items": [
    {
      "name": "string",
      "rate": 0.0,
      "quantity": 0.0,
      "amount": 0.0
    }
  ]
}

Rules:
- Output MUST be valid JSON, no comments, no trailing commas.
- Do NOT wrap the JSON in markdown code fences.
- If the page has no items, return:
  {
    "page_no": "...",
    "page_type": "...",
    "items": []
  }`
